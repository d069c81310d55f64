package items

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderErrors tracks provider operation errors
	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_provider_errors_total",
			Help: "Total number of item provider operation errors",
		},
		[]string{"provider", "operation"}, // "redis", "items"/"load"
	)

	// ProviderReads tracks successful item reads
	ProviderReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_provider_reads_total",
			Help: "Total number of successful item provider reads",
		},
		[]string{"provider"},
	)
)
