package search

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/Sternrassler/paginated-search/pkg/items"
	"github.com/Sternrassler/paginated-search/pkg/logging"
	"github.com/Sternrassler/paginated-search/pkg/pagination"
	"github.com/rs/zerolog"
)

// Generator produces paginated search streams. It holds only configuration
// and is safe for concurrent use; every search gets its own state chain.
type Generator struct {
	pageSize int
	delayer  Delayer
	provider items.Provider
	logger   zerolog.Logger
}

// New creates a new generator.
func New(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	delayer := cfg.Delayer
	if delayer == nil {
		delayer = TimerDelay(cfg.SimulatedDelay)
	}

	logger := logging.NewLogger("search")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Generator{
		pageSize: cfg.PageSize,
		delayer:  delayer,
		provider: cfg.Provider,
		logger:   logger,
	}, nil
}

// PageSize returns the configured page size.
func (g *Generator) PageSize() int {
	return g.pageSize
}

// step waits for the simulated latency, then computes the next page.
func (g *Generator) step(ctx context.Context, s State) (State, error) {
	start := time.Now()

	if err := g.delayer.Delay(ctx); err != nil {
		return s, cancelled(err)
	}

	var candidates []string
	if !IsBlank(s.SearchTerm) {
		var err error
		candidates, err = g.provider.Items(ctx)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrProvider, err)
		}
	}

	next := Advance(candidates, g.pageSize, s)
	pageDuration.Observe(time.Since(start).Seconds())

	g.logger.Debug().
		Str("search_term", next.SearchTerm).
		Int("page", next.PageNumber).
		Int("items", len(next.Items)).
		Str("phase", next.Phase.String()).
		Dur("duration", time.Since(start)).
		Msg("Advanced search state")

	return next, nil
}

// run is the bookkeeping shared by Stream and Subscription.
type run struct {
	term   string
	seq    *pagination.Sequence[State, Result]
	start  time.Time
	pages  int
	once   sync.Once
	err    error
	logger zerolog.Logger
}

func (g *Generator) newRun(term string) *run {
	r := &run{
		term:   term,
		start:  time.Now(),
		logger: g.logger.With().Str("search_term", term).Logger(),
	}

	r.seq = pagination.Machine[State, Result]{
		Continue: Continue,
		Advance:  g.step,
		Project:  Project,
	}.Start(NewState(term))

	streamsStarted.Inc()
	activeStreams.Inc()
	return r
}

// delivered records a result handed to the consumer.
func (r *run) delivered(result Result) {
	page := 0
	if p, ok := result.(PageReady); ok {
		page = p.PageNumber
		r.pages++
		pagesEmitted.Inc()
	}

	r.logger.Debug().
		Int("page", page).
		Msg("Delivered search result")
}

// finish records the outcome once and returns the final error.
func (r *run) finish(err error) error {
	r.once.Do(func() {
		outcome, final := classify(err)
		r.err = final

		activeStreams.Dec()
		streamsFinished.WithLabelValues(outcome).Inc()

		level := zerolog.InfoLevel
		switch outcome {
		case outcomeError:
			level = zerolog.WarnLevel
		case outcomeCancelled:
			level = zerolog.DebugLevel
		}
		r.logger.WithLevel(level).
			Err(final).
			Int("pages", r.pages).
			Str("outcome", outcome).
			Dur("duration", time.Since(r.start)).
			Msg("Search stream finished")
	})
	return r.err
}

// Stream is a pull iterator over the results of one search.
// A Stream is not safe for concurrent use.
type Stream struct {
	ctx     context.Context
	cancel  context.CancelFunc
	run     *run
	current Result
	done    bool
}

// Search starts a new lazy search for term. The first call to Next yields
// StreamStarting; each further call computes one page. Close releases the
// stream when it is abandoned before completion.
func (g *Generator) Search(ctx context.Context, term string) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	return &Stream{
		ctx:    ctx,
		cancel: cancel,
		run:    g.newRun(term),
	}
}

// Next advances the stream. It returns false when the stream has completed,
// was cancelled, or failed; Err distinguishes the cases.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}

	if err := s.ctx.Err(); err != nil {
		s.end(err)
		return false
	}

	result, ok, err := s.run.seq.Next(s.ctx)
	if err != nil || !ok {
		s.end(err)
		return false
	}

	s.current = result
	s.run.delivered(result)
	return true
}

// Result returns the result produced by the last successful Next.
func (s *Stream) Result() Result {
	return s.current
}

// Err returns nil if the stream completed normally, an ErrCancelled error if
// it was cancelled or closed early, or an ErrProvider error.
func (s *Stream) Err() error {
	return s.run.err
}

// Pages returns the number of PageReady results delivered so far.
func (s *Stream) Pages() int {
	return s.run.pages
}

// Close stops the stream. No further pages are computed.
func (s *Stream) Close() {
	if !s.done {
		s.end(context.Canceled)
	}
	s.cancel()
}

// All returns the remaining results as a range-over-func iterator.
func (s *Stream) All() iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for s.Next() {
			if !yield(s.Result()) {
				return
			}
		}
	}
}

func (s *Stream) end(err error) {
	s.done = true
	s.current = nil
	s.run.finish(err)
	s.cancel()
}

// Seq returns a single-use iterator over a new search for term. The search
// is closed when iteration stops. Use Search to observe errors.
func (g *Generator) Seq(ctx context.Context, term string) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		stream := g.Search(ctx, term)
		defer stream.Close()

		for stream.Next() {
			if !yield(stream.Result()) {
				return
			}
		}
	}
}

// Collect runs a search for term to completion and returns every result.
func (g *Generator) Collect(ctx context.Context, term string) ([]Result, error) {
	stream := g.Search(ctx, term)
	defer stream.Close()

	var results []Result
	for stream.Next() {
		results = append(results, stream.Result())
	}
	return results, stream.Err()
}

// Subscription delivers the results of one search from a producer goroutine.
type Subscription struct {
	c      chan Result
	done   chan struct{}
	cancel context.CancelFunc
	run    *run
}

// Subscribe starts a search for term on a new goroutine. Results arrive on
// C in order; C is closed when the stream ends. The producer computes the
// next page only after the previous result was received.
func (g *Generator) Subscribe(ctx context.Context, term string) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		c:      make(chan Result),
		done:   make(chan struct{}),
		cancel: cancel,
		run:    g.newRun(term),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.c)
		defer cancel()

		sub.run.finish(pagination.Pump(ctx, sub.run.seq, sub.c, sub.run.delivered))
	}()

	return sub
}

// C returns the result channel.
func (s *Subscription) C() <-chan Result {
	return s.c
}

// Done is closed once the producer has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Cancel stops the producer and waits for it to exit.
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// Err returns the error that ended the subscription. It blocks until the
// producer has exited.
func (s *Subscription) Err() error {
	<-s.done
	return s.run.err
}
