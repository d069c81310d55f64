package pagination

import (
	"context"
	"errors"
)

// ErrNilAdvance is returned by Next when the machine has no Advance function
// and a successor state is needed.
var ErrNilAdvance = errors.New("pagination: machine has no advance function")

// Machine holds the functions that drive a sequence.
type Machine[S, R any] struct {
	// Continue reports whether the state should be projected and emitted.
	// A nil Continue never stops.
	Continue func(S) bool

	// Advance computes the successor state.
	Advance func(ctx context.Context, state S) (S, error)

	// Project converts a state into an emitted result.
	Project func(S) R
}

// Start returns a new sequence seeded with the given state.
// Every call returns an independent sequence.
func (m Machine[S, R]) Start(seed S) *Sequence[S, R] {
	return &Sequence[S, R]{
		machine: m,
		state:   seed,
	}
}

// Sequence is a lazy pull iterator over the results of a Machine.
// A Sequence is not safe for concurrent use.
type Sequence[S, R any] struct {
	machine Machine[S, R]
	state   S
	started bool
	done    bool
	err     error
}

// Next returns the next result. It returns ok=false once the sequence has
// completed or failed; err is non-nil only on failure.
func (s *Sequence[S, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	if s.done {
		return result, false, s.err
	}

	if s.started {
		if s.machine.Advance == nil {
			return result, false, s.fail(ErrNilAdvance)
		}
		next, err := s.machine.Advance(ctx, s.state)
		if err != nil {
			return result, false, s.fail(err)
		}
		s.state = next
	}
	s.started = true

	if s.machine.Continue != nil && !s.machine.Continue(s.state) {
		s.done = true
		return result, false, nil
	}

	return s.machine.Project(s.state), true, nil
}

// State returns the current state.
func (s *Sequence[S, R]) State() S {
	return s.state
}

// Done reports whether the sequence has completed or failed.
func (s *Sequence[S, R]) Done() bool {
	return s.done
}

// Err returns the error that ended the sequence, if any.
func (s *Sequence[S, R]) Err() error {
	return s.err
}

func (s *Sequence[S, R]) fail(err error) error {
	s.done = true
	s.err = err
	return err
}

// Pump drives seq and sends each result on out until the sequence completes,
// fails, or ctx is cancelled. The next element is requested only after the
// previous one was received. If sent is non-nil it is called after each
// completed send; a result dropped by cancellation is never passed to it.
// Pump does not close out.
func Pump[S, R any](ctx context.Context, seq *Sequence[S, R], out chan<- R, sent func(R)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, ok, err := seq.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		select {
		case out <- result:
			if sent != nil {
				sent(result)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
