// Package metrics documents the Prometheus metrics exposed by this
// module. All metrics are defined in their owning packages (fetcher,
// client) and registered automatically via promauto; this package only
// exposes the registry reference.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the module.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Fetch Pattern Metrics (pkg/fetcher):
//   - fetch_requests_total{pattern, status} (Counter): Fetch requests by
//     pattern (sequential, concurrent, batch, bounded) and result status
//     (success, error)
//   - fetch_request_duration_seconds{pattern} (Histogram): Single request
//     duration including artificial delay
//   - fetch_in_flight (Gauge): Requests currently in flight across all
//     patterns
//   - fetch_batches_total (Counter): Batch groups processed
//
// HTTP Client Metrics (pkg/client):
//   - http_client_requests_total{status} (Counter): Requests by HTTP
//     status code (or network_error / read_error)
//   - http_client_request_duration_seconds (Histogram): Request duration
//   - http_client_errors_total{class} (Counter): Errors by class
//     (client, server, network)
//
// Example Prometheus Queries:
//
//   # Peak concurrency check
//   max_over_time(fetch_in_flight[5m])
//
//   # Error rate by pattern
//   sum by (pattern) (rate(fetch_requests_total{status="error"}[5m]))
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(http_client_request_duration_seconds_bucket[5m]))
