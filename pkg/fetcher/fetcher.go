// Package fetcher provides sequential, concurrent, and bounded-concurrency
// fetch patterns that stream results over a channel.
package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for fetch operations.
var (
	fetchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fetch_requests_total",
		Help: "Total fetch requests by pattern and result status",
	}, []string{"pattern", "status"})

	fetchRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fetch_request_duration_seconds",
		Help:    "Single fetch request duration in seconds by pattern",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"pattern"})

	fetchInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fetch_in_flight",
		Help: "Number of fetch requests currently in flight",
	})
)

// Status classifies the outcome of a single fetch request.
type Status string

const (
	// StatusSuccess means the request completed with a response.
	StatusSuccess Status = "success"

	// StatusError means the request failed and carries an error message.
	StatusError Status = "error"
)

// Request identifies a single resource to fetch.
type Request struct {
	// URL is the target resource.
	URL string

	// Delay is an optional artificial delay applied before the request
	// is issued, used to simulate varying response times in demos and
	// tests. Zero means no delay.
	Delay time.Duration
}

// Result is the immutable outcome of one fetch request.
type Result struct {
	// URL is the request's target resource.
	URL string

	// Status is success or error.
	Status Status

	// StatusCode is the HTTP status code (0 when Status is error).
	StatusCode int

	// Length is the response body length in bytes.
	Length int

	// Error is a human-readable message when Status is error.
	Error string

	// Elapsed is the wall-clock duration of this request, including
	// any artificial delay.
	Elapsed time.Duration
}

// OK reports whether the result carries a response rather than an error.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Getter is the resource fetch collaborator. Implementations must be
// safe for concurrent use; every failure must surface as a returned
// error, never a panic.
type Getter interface {
	Get(ctx context.Context, url string) (statusCode int, body []byte, err error)
}

// GetterFunc adapts a function to the Getter interface.
type GetterFunc func(ctx context.Context, url string) (int, []byte, error)

// Get calls f.
func (f GetterFunc) Get(ctx context.Context, url string) (int, []byte, error) {
	return f(ctx, url)
}

// fetchOne performs a single request and converts any failure into an
// error-status Result. Errors never propagate past this boundary.
func fetchOne(ctx context.Context, g Getter, pattern string, req Request) Result {
	start := time.Now()
	fetchInFlight.Inc()
	defer func() {
		fetchInFlight.Dec()
		fetchRequestDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
	}()

	if req.Delay > 0 {
		select {
		case <-time.After(req.Delay):
		case <-ctx.Done():
			fetchRequestsTotal.WithLabelValues(pattern, string(StatusError)).Inc()
			return Result{
				URL:     req.URL,
				Status:  StatusError,
				Error:   ctx.Err().Error(),
				Elapsed: time.Since(start),
			}
		}
	}

	statusCode, body, err := g.Get(ctx, req.URL)
	if err != nil {
		log.Warn().
			Err(err).
			Str("pattern", pattern).
			Str("url", req.URL).
			Msg("Fetch request failed")
		fetchRequestsTotal.WithLabelValues(pattern, string(StatusError)).Inc()
		return Result{
			URL:     req.URL,
			Status:  StatusError,
			Error:   err.Error(),
			Elapsed: time.Since(start),
		}
	}

	fetchRequestsTotal.WithLabelValues(pattern, string(StatusSuccess)).Inc()
	return Result{
		URL:        req.URL,
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Length:     len(body),
		Elapsed:    time.Since(start),
	}
}

// Sequential fetches requests one at a time and streams results in
// input order. Each request starts only after the previous result has
// been consumed. The channel is closed after exactly len(reqs) results.
func Sequential(ctx context.Context, g Getter, reqs []Request) <-chan Result {
	out := make(chan Result)

	go func() {
		defer close(out)
		start := time.Now()
		for _, req := range reqs {
			out <- fetchOne(ctx, g, "sequential", req)
		}
		log.Debug().
			Int("requests", len(reqs)).
			Dur("duration", time.Since(start)).
			Msg("Sequential fetch complete")
	}()

	return out
}

// Concurrent starts all requests immediately and streams results in
// completion order. Completion order is non-deterministic when request
// latencies are similar. The channel is closed after exactly len(reqs)
// results; one failing request never suppresses its siblings.
func Concurrent(ctx context.Context, g Getter, reqs []Request) <-chan Result {
	out := make(chan Result, len(reqs))

	var wg sync.WaitGroup
	for _, req := range reqs {
		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			out <- fetchOne(ctx, g, "concurrent", req)
		}(req)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
