package search

import (
	"fmt"
	"time"

	"github.com/Sternrassler/paginated-search/pkg/items"
	"github.com/rs/zerolog"
)

const (
	// DefaultPageSize is the number of items per page.
	DefaultPageSize = 4

	// DefaultSimulatedDelay is the artificial latency per page.
	DefaultSimulatedDelay = 200 * time.Millisecond
)

// Config holds the generator configuration.
type Config struct {
	// PageSize is the maximum number of items per page.
	PageSize int

	// SimulatedDelay is the per-page latency used when Delayer is nil.
	SimulatedDelay time.Duration

	// Delayer overrides the timer built from SimulatedDelay (for testing).
	Delayer Delayer

	// Provider supplies the candidate items (REQUIRED).
	Provider items.Provider

	// Logger overrides the default component logger.
	Logger *zerolog.Logger
}

// DefaultConfig returns the default configuration over the country list.
func DefaultConfig() Config {
	return Config{
		PageSize:       DefaultPageSize,
		SimulatedDelay: DefaultSimulatedDelay,
		Provider:       items.CountriesProvider(),
	}
}

// validate checks the configuration.
func (c Config) validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be >= 1 (got %d)", c.PageSize)
	}
	if c.SimulatedDelay < 0 {
		return fmt.Errorf("simulated_delay must be >= 0 (got %s)", c.SimulatedDelay)
	}
	if c.Provider == nil {
		return fmt.Errorf("item provider is required")
	}
	return nil
}
