package testutil

import (
	"context"
	"sync"
)

// ScriptedProvider serves Values and fails with Err once FailAfter successful
// reads have been served. A zero FailAfter with a non-nil Err fails at once.
type ScriptedProvider struct {
	Values    []string
	Err       error
	FailAfter int

	mu    sync.Mutex
	reads int
}

// Items implements items.Provider.
func (p *ScriptedProvider) Items(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil && p.reads >= p.FailAfter {
		return nil, p.Err
	}
	p.reads++
	return p.Values, nil
}

// Reads returns the number of successful reads.
func (p *ScriptedProvider) Reads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads
}
