// Package fetcher implements three execution strategies for fetching
// many remote resources through a single Getter collaborator:
//
//   - Sequential: one request at a time, results in input order.
//     Total time is the sum of individual request durations.
//   - Concurrent: all requests start immediately, results in
//     completion order. Total time is roughly the slowest request.
//   - BatchFetcher: consecutive groups of at most BatchSize, groups
//     strictly sequential, completion order within a group. Peak
//     in-flight work never exceeds BatchSize.
//
// BoundedFetcher is the smoother variant of batching: a counting
// semaphore admits the next request as soon as any slot frees, keeping
// the same peak-concurrency cap without group barriers.
//
// Example usage:
//
//	bf, err := fetcher.NewBatchFetcher(httpGetter, fetcher.Config{BatchSize: 3})
//	if err != nil {
//		return err
//	}
//	for result := range bf.Fetch(ctx, reqs) {
//		fmt.Println(result.URL, result.Status)
//	}
//
// Every strategy yields exactly one Result per Request and closes the
// channel afterwards. Per-request failures are captured into
// error-status Results at the request boundary; they never abort
// sibling requests or the stream itself. There are no retries: a
// request moves pending -> in flight -> completed or failed, once.
package fetcher
