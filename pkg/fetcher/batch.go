package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var fetchBatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fetch_batches_total",
	Help: "Total number of batch groups processed",
})

// Config holds batch fetcher configuration.
type Config struct {
	// BatchSize is the maximum number of requests in flight at once.
	// Must be >= 1.
	BatchSize int
}

// BatchFetcher fetches requests in consecutive groups of at most
// BatchSize. Groups run strictly in sequence; within a group requests
// run in parallel and results stream in completion order. Peak
// in-flight requests never exceed BatchSize.
type BatchFetcher struct {
	getter Getter
	config Config
}

// NewBatchFetcher creates a batch fetcher. It fails fast on a
// misconfigured batch size rather than degrading silently.
func NewBatchFetcher(g Getter, cfg Config) (*BatchFetcher, error) {
	if g == nil {
		return nil, fmt.Errorf("getter is required")
	}
	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be >= 1 (got %d)", cfg.BatchSize)
	}

	return &BatchFetcher{
		getter: g,
		config: cfg,
	}, nil
}

// Fetch streams results for reqs over the returned channel. A group's
// results are all yielded before the next group starts; a batch size
// >= len(reqs) degenerates to a single fully concurrent group. The
// channel is closed after exactly len(reqs) results.
func (bf *BatchFetcher) Fetch(ctx context.Context, reqs []Request) <-chan Result {
	out := make(chan Result)

	go func() {
		defer close(out)
		start := time.Now()
		groups := 0

		for lo := 0; lo < len(reqs); lo += bf.config.BatchSize {
			hi := min(lo+bf.config.BatchSize, len(reqs))
			group := reqs[lo:hi]
			groups++

			results := make(chan Result, len(group))
			var wg sync.WaitGroup
			for _, req := range group {
				wg.Add(1)
				go func(req Request) {
					defer wg.Done()
					results <- fetchOne(ctx, bf.getter, "batch", req)
				}(req)
			}

			go func() {
				wg.Wait()
				close(results)
			}()

			for result := range results {
				out <- result
			}

			fetchBatchesTotal.Inc()
			log.Debug().
				Int("group", groups).
				Int("size", len(group)).
				Msg("Batch group complete")
		}

		log.Debug().
			Int("requests", len(reqs)).
			Int("groups", groups).
			Dur("duration", time.Since(start)).
			Msg("Batch fetch complete")
	}()

	return out
}
