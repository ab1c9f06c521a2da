package fetcher

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// BoundedFetcher caps in-flight requests with a counting semaphore
// shared across all requests. It keeps the same peak-concurrency
// invariant as BatchFetcher but admits the next request as soon as any
// one finishes, instead of waiting for a whole group.
type BoundedFetcher struct {
	getter Getter
	limit  int64
}

// NewBoundedFetcher creates a bounded fetcher with the given
// concurrency limit. Limits below 1 are a configuration error.
func NewBoundedFetcher(g Getter, limit int) (*BoundedFetcher, error) {
	if g == nil {
		return nil, fmt.Errorf("getter is required")
	}
	if limit < 1 {
		return nil, fmt.Errorf("concurrency limit must be >= 1 (got %d)", limit)
	}

	return &BoundedFetcher{
		getter: g,
		limit:  int64(limit),
	}, nil
}

// Fetch streams results in completion order, with at most the
// configured limit of requests in flight at any instant. The channel
// is closed after exactly len(reqs) results.
func (bf *BoundedFetcher) Fetch(ctx context.Context, reqs []Request) <-chan Result {
	out := make(chan Result, len(reqs))
	sem := semaphore.NewWeighted(bf.limit)

	var wg sync.WaitGroup
	for _, req := range reqs {
		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				out <- Result{
					URL:    req.URL,
					Status: StatusError,
					Error:  err.Error(),
				}
				return
			}
			defer sem.Release(1)
			out <- fetchOne(ctx, bf.getter, "bounded", req)
		}(req)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
