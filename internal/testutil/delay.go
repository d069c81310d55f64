// Package testutil provides testing utilities for paginated search.
package testutil

import (
	"context"
	"sync"
	"sync/atomic"
)

// RecordingDelayer returns immediately and counts calls.
type RecordingDelayer struct {
	calls atomic.Int64
}

// Delay records the call and reports cancellation.
func (d *RecordingDelayer) Delay(ctx context.Context) error {
	d.calls.Add(1)
	return ctx.Err()
}

// Calls returns the number of Delay calls.
func (d *RecordingDelayer) Calls() int {
	return int(d.calls.Load())
}

// GateDelayer blocks every Delay call until Release is called or the
// context is cancelled. Entered receives one value per blocked call.
type GateDelayer struct {
	Entered chan struct{}

	once    sync.Once
	release chan struct{}
}

// NewGateDelayer creates a closed gate.
func NewGateDelayer() *GateDelayer {
	return &GateDelayer{
		Entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

// Delay blocks until released or cancelled.
func (d *GateDelayer) Delay(ctx context.Context) error {
	select {
	case d.Entered <- struct{}{}:
	default:
	}

	select {
	case <-d.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release opens the gate for all current and future calls.
func (d *GateDelayer) Release() {
	d.once.Do(func() { close(d.release) })
}
