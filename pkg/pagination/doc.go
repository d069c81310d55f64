// Package pagination provides a generic generate-until-stop primitive for
// producing paginated result streams from a seed state.
//
// A Machine describes three functions over a state type S and a result type R:
//
//   - Continue decides whether the current state produces output
//   - Advance computes the successor state (may block, e.g. simulated I/O)
//   - Project turns a state into the emitted result
//
// The stop check runs on the current state before projection, so a terminal
// state is computed but never emitted.
//
// Example usage:
//
//	m := pagination.Machine[State, Result]{
//		Continue: func(s State) bool { return !s.Done },
//		Advance:  nextPage,
//		Project:  toResult,
//	}
//	seq := m.Start(seed)
//	for {
//		r, ok, err := seq.Next(ctx)
//		if err != nil || !ok {
//			break
//		}
//		handle(r)
//	}
//
// Sequences are lazy: Advance runs only when the next element is requested.
// Pump drives a sequence from a goroutine and delivers results on a channel.
package pagination
