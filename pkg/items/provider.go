// Package items provides the candidate collections that searches filter.
package items

import (
	"context"
	"slices"
)

// Provider exposes the ordered candidate strings a search filters.
// Implementations must return items in a stable order.
type Provider interface {
	Items(ctx context.Context) ([]string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]string, error)

// Items calls f(ctx).
func (f ProviderFunc) Items(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// StaticProvider serves a fixed in-memory collection.
type StaticProvider struct {
	items []string
}

// NewStaticProvider creates a provider over a copy of items.
func NewStaticProvider(items []string) *StaticProvider {
	return &StaticProvider{items: slices.Clone(items)}
}

// CountriesProvider returns a provider over the built-in country list.
func CountriesProvider() *StaticProvider {
	return NewStaticProvider(Countries)
}

// Items returns the collection. Callers must not modify the returned slice.
func (p *StaticProvider) Items(ctx context.Context) ([]string, error) {
	return p.items, nil
}

// Len returns the number of items.
func (p *StaticProvider) Len() int {
	return len(p.items)
}
