// Package metrics provides the Prometheus registry reference for paginated search.
// All metrics are defined in their respective packages (search, items)
// and registered via promauto.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by all packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the default Prometheus gatherer matching Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler serves the metrics in Gatherer. Handler errors are counted in
// promhttp_metric_handler_errors_total, registered with Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{
		Registry: Registry,
	})
}

// Metrics Documentation
//
// Search Metrics (pkg/search):
//   - search_streams_started_total (Counter): Streams created by Search or Subscribe
//   - search_streams_finished_total{outcome} (Counter): Streams finished (done, cancelled, error)
//   - search_pages_emitted_total (Counter): PageReady results delivered
//   - search_page_duration_seconds (Histogram): Time to advance one page, delay included
//   - search_active_streams (Gauge): Streams not yet finished
//
// Item Provider Metrics (pkg/items):
//   - items_provider_errors_total{provider, operation} (Counter): Provider operation errors
//   - items_provider_reads_total{provider} (Counter): Successful provider reads
//
// Example Prometheus Queries:
//
//   # Cancellation Rate
//   rate(search_streams_finished_total{outcome="cancelled"}[5m]) /
//   rate(search_streams_started_total[5m])
//
//   # Average Pages per Stream
//   rate(search_pages_emitted_total[5m]) / rate(search_streams_finished_total[5m])
//
//   # P95 Page Latency
//   histogram_quantile(0.95, rate(search_page_duration_seconds_bucket[5m]))
//
//   # Redis Provider Errors
//   rate(items_provider_errors_total{provider="redis"}[5m])
