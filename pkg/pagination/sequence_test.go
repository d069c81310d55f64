package pagination

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// counter counts up to limit; the state equal to limit is terminal.
func counter(limit int, calls *int) Machine[int, int] {
	return Machine[int, int]{
		Continue: func(s int) bool { return s < limit },
		Advance: func(ctx context.Context, s int) (int, error) {
			*calls++
			return s + 1, nil
		},
		Project: func(s int) int { return s * 10 },
	}
}

func TestSequence_Next(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		expected  []int
		advancers int
	}{
		{name: "seed is terminal", limit: 0, expected: nil, advancers: 0},
		{name: "seed only", limit: 1, expected: []int{0}, advancers: 1},
		{name: "three elements", limit: 3, expected: []int{0, 10, 20}, advancers: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			seq := counter(tt.limit, &calls).Start(0)

			var got []int
			for {
				r, ok, err := seq.Next(context.Background())
				if err != nil {
					t.Fatalf("Next returned error: %v", err)
				}
				if !ok {
					break
				}
				got = append(got, r)
			}

			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("element %d = %d, want %d", i, got[i], tt.expected[i])
				}
			}
			if calls != tt.advancers {
				t.Errorf("Advance called %d times, want %d", calls, tt.advancers)
			}
			if !seq.Done() {
				t.Error("sequence should be done")
			}
		})
	}
}

func TestSequence_NextAfterDone(t *testing.T) {
	calls := 0
	seq := counter(1, &calls).Start(0)

	for i := 0; i < 2; i++ {
		seq.Next(context.Background())
	}
	if _, ok, err := seq.Next(context.Background()); ok || err != nil {
		t.Errorf("Next after completion = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
	if calls != 1 {
		t.Errorf("Advance called %d times after completion, want 1", calls)
	}
}

func TestSequence_Lazy(t *testing.T) {
	calls := 0
	seq := counter(100, &calls).Start(0)

	seq.Next(context.Background())
	seq.Next(context.Background())

	if calls != 1 {
		t.Errorf("Advance called %d times for two elements, want 1", calls)
	}
	if seq.State() != 1 {
		t.Errorf("State() = %d, want 1", seq.State())
	}
}

func TestSequence_AdvanceError(t *testing.T) {
	boom := errors.New("boom")
	m := Machine[int, int]{
		Advance: func(ctx context.Context, s int) (int, error) { return 0, boom },
		Project: func(s int) int { return s },
	}
	seq := m.Start(7)

	if r, ok, err := seq.Next(context.Background()); !ok || err != nil || r != 7 {
		t.Fatalf("first Next = (%d, %v, %v), want (7, true, nil)", r, ok, err)
	}

	_, ok, err := seq.Next(context.Background())
	if ok || !errors.Is(err, boom) {
		t.Fatalf("second Next = (ok=%v, err=%v), want boom", ok, err)
	}
	if !errors.Is(seq.Err(), boom) {
		t.Errorf("Err() = %v, want boom", seq.Err())
	}

	// Failure is sticky
	if _, _, err := seq.Next(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Next after failure err = %v, want boom", err)
	}
}

func TestSequence_NilAdvance(t *testing.T) {
	m := Machine[int, int]{Project: func(s int) int { return s }}
	seq := m.Start(1)

	seq.Next(context.Background())
	if _, _, err := seq.Next(context.Background()); !errors.Is(err, ErrNilAdvance) {
		t.Errorf("err = %v, want ErrNilAdvance", err)
	}
}

func TestPump(t *testing.T) {
	calls := 0
	sent := 0
	seq := counter(4, &calls).Start(0)
	out := make(chan int)

	errCh := make(chan error, 1)
	go func() {
		errCh <- Pump(context.Background(), seq, out, func(int) { sent++ })
		close(out)
	}()

	var got []int
	for r := range out {
		got = append(got, r)
	}

	if err := <-errCh; err != nil {
		t.Fatalf("Pump returned error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %v, want 4 elements", got)
	}
	if sent != 4 {
		t.Errorf("sent callback called %d times, want 4", sent)
	}
}

func TestPump_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	seq := counter(1000, &calls).Start(0)
	out := make(chan int)

	var sent atomic.Int32
	errCh := make(chan error, 1)
	go func() {
		errCh <- Pump(ctx, seq, out, func(int) { sent.Add(1) })
	}()

	<-out
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Pump err = %v, want context.Canceled", err)
		}
		// Only the received element counts; the one pending at cancel does not
		if n := sent.Load(); n != 1 {
			t.Errorf("sent callback called %d times, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Pump did not stop after cancellation")
	}
}
