// Command fetch-demo runs the sequential, concurrent, batch, and
// bounded fetch patterns against a fixed URL list and prints a timing
// summary for each.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/parfetch/parfetch/pkg/client"
	"github.com/parfetch/parfetch/pkg/fetcher"
	"github.com/parfetch/parfetch/pkg/logging"
)

const (
	userAgent = "fetch-demo/1.0.0 (github.com/parfetch/parfetch)"

	// batchSize caps in-flight requests for the batch and bounded
	// patterns.
	batchSize = 3
)

// targetURLs is the fixed demo target list.
var targetURLs = []string{
	"https://httpbin.org/delay/0",
	"https://httpbin.org/status/200",
	"https://httpbin.org/json",
	"https://httpbin.org/uuid",
	"https://httpbin.org/base64/SFRUUEJJTiBpcyBhd2Vzb21l",
	"https://httpbin.org/status/201",
	"https://httpbin.org/headers",
	"https://httpbin.org/ip",
}

func main() {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "warn")),
		Pretty: true,
		Output: os.Stderr,
	})

	httpClient, err := client.New(client.DefaultConfig(userAgent))
	if err != nil {
		log.Fatalf("Failed to create HTTP client: %v", err)
	}

	if err := runDemo(context.Background(), httpClient, targetURLs, os.Stdout); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

// runDemo runs all four patterns in sequence and writes per-result
// lines plus a timing summary to w.
func runDemo(ctx context.Context, g fetcher.Getter, urls []string, w io.Writer) error {
	fmt.Fprintf(w, "HTTP Request Patterns Demo (%d URLs)\n\n", len(urls))

	var s summary

	fmt.Fprintln(w, "Sequential pattern (one at a time):")
	s.sequential = drain(w, fetcher.Sequential(ctx, g, staggeredRequests(urls)))

	fmt.Fprintln(w, "Concurrent pattern (all at once):")
	s.concurrent = drain(w, fetcher.Concurrent(ctx, g, staggeredRequests(urls)))

	fmt.Fprintf(w, "Batch pattern (groups of %d):\n", batchSize)
	bf, err := fetcher.NewBatchFetcher(g, fetcher.Config{BatchSize: batchSize})
	if err != nil {
		return err
	}
	s.batch = drain(w, bf.Fetch(ctx, batchRequests(urls)))

	fmt.Fprintf(w, "Bounded pattern (limit %d, no group barrier):\n", batchSize)
	bounded, err := fetcher.NewBoundedFetcher(g, batchSize)
	if err != nil {
		return err
	}
	s.bounded = drain(w, bounded.Fetch(ctx, batchRequests(urls)))

	s.write(w)
	return nil
}

// drain consumes a result stream, printing each result, and returns
// the wall-clock time from first receive attempt to channel close.
func drain(w io.Writer, results <-chan fetcher.Result) time.Duration {
	start := time.Now()
	for r := range results {
		fmt.Fprintf(w, "  %s\n", formatResult(r))
	}
	elapsed := time.Since(start)
	fmt.Fprintf(w, "  time: %.2fs\n\n", elapsed.Seconds())
	return elapsed
}

// staggeredRequests assigns artificial delays of 0, 100ms, 200ms
// cycling by index, simulating varying response times.
func staggeredRequests(urls []string) []fetcher.Request {
	reqs := make([]fetcher.Request, len(urls))
	for i, u := range urls {
		reqs[i] = fetcher.Request{
			URL:   u,
			Delay: time.Duration(i%3) * 100 * time.Millisecond,
		}
	}
	return reqs
}

// batchRequests assigns a flat 50ms delay to every request.
func batchRequests(urls []string) []fetcher.Request {
	reqs := make([]fetcher.Request, len(urls))
	for i, u := range urls {
		reqs[i] = fetcher.Request{
			URL:   u,
			Delay: 50 * time.Millisecond,
		}
	}
	return reqs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
