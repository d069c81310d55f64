package search

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when a stream stops because its context was
	// cancelled, its deadline passed, or the consumer closed it.
	ErrCancelled = errors.New("search cancelled")

	// ErrProvider is returned when the item provider fails.
	ErrProvider = errors.New("item provider failed")
)

// cancelled wraps err in ErrCancelled unless it already is.
func cancelled(err error) error {
	if err == nil || errors.Is(err, ErrCancelled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

// classify maps a stream-ending error to its outcome label and final error.
func classify(err error) (outcome string, final error) {
	switch {
	case err == nil:
		return outcomeDone, nil
	case errors.Is(err, ErrProvider):
		return outcomeError, err
	default:
		// Context and Delayer failures both end the stream as cancelled.
		return outcomeCancelled, cancelled(err)
	}
}
