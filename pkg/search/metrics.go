package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stream outcomes used as the "outcome" label.
const (
	outcomeDone      = "done"
	outcomeCancelled = "cancelled"
	outcomeError     = "error"
)

var (
	streamsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_streams_started_total",
		Help: "Total number of search streams created",
	})

	streamsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "search_streams_finished_total",
		Help: "Total number of search streams finished by outcome",
	}, []string{"outcome"})

	pagesEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_pages_emitted_total",
		Help: "Total number of result pages delivered to consumers",
	})

	pageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_page_duration_seconds",
		Help:    "Time to advance a search by one page, simulated delay included",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.2, 0.5, 1},
	})

	activeStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "search_active_streams",
		Help: "Number of search streams not yet finished",
	})
)
