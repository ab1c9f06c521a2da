package main

import (
	"fmt"
	"io"
	"time"

	"github.com/parfetch/parfetch/pkg/fetcher"
)

// formatResult renders one result line.
func formatResult(r fetcher.Result) string {
	if !r.OK() {
		return fmt.Sprintf("FAIL %s -> %s", r.URL, r.Error)
	}
	return fmt.Sprintf("OK   %s -> %d (%d bytes)", r.URL, r.StatusCode, r.Length)
}

// summary holds per-pattern wall-clock totals.
type summary struct {
	sequential time.Duration
	concurrent time.Duration
	batch      time.Duration
	bounded    time.Duration
}

// write renders the timing summary with speedups relative to the
// sequential run.
func (s summary) write(w io.Writer) {
	fmt.Fprintln(w, "Performance Summary:")
	fmt.Fprintf(w, "  Sequential: %.2fs\n", s.sequential.Seconds())
	fmt.Fprintf(w, "  Concurrent: %.2fs\n", s.concurrent.Seconds())
	fmt.Fprintf(w, "  Batch:      %.2fs\n", s.batch.Seconds())
	fmt.Fprintf(w, "  Bounded:    %.2fs\n", s.bounded.Seconds())

	if s.sequential > 0 {
		fmt.Fprintf(w, "  Speedup (concurrent): %.1fx\n", speedup(s.sequential, s.concurrent))
		fmt.Fprintf(w, "  Speedup (batch):      %.1fx\n", speedup(s.sequential, s.batch))
		fmt.Fprintf(w, "  Speedup (bounded):    %.1fx\n", speedup(s.sequential, s.bounded))
	}
}

func speedup(baseline, measured time.Duration) float64 {
	if measured <= 0 {
		return 0
	}
	return baseline.Seconds() / measured.Seconds()
}
