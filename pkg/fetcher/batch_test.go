package fetcher

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNewBatchFetcher_Validation(t *testing.T) {
	g := &fakeGetter{}

	tests := []struct {
		name        string
		getter      Getter
		config      Config
		expectError bool
	}{
		{
			name:   "valid config",
			getter: g,
			config: Config{BatchSize: 3},
		},
		{
			name:   "batch size one",
			getter: g,
			config: Config{BatchSize: 1},
		},
		{
			name:        "nil getter",
			getter:      nil,
			config:      Config{BatchSize: 3},
			expectError: true,
		},
		{
			name:        "zero batch size",
			getter:      g,
			config:      Config{BatchSize: 0},
			expectError: true,
		},
		{
			name:        "negative batch size",
			getter:      g,
			config:      Config{BatchSize: -1},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bf, err := NewBatchFetcher(tt.getter, tt.config)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if bf == nil {
				t.Error("BatchFetcher is nil")
			}
		})
	}
}

func TestBatchFetcher_GroupBarrier(t *testing.T) {
	g := &fakeGetter{}
	bf, err := NewBatchFetcher(g, Config{BatchSize: 2})
	if err != nil {
		t.Fatalf("NewBatchFetcher: %v", err)
	}

	// Group 1: A (150ms), B (50ms). Group 2: C (100ms).
	reqs := []Request{
		{URL: "https://a.test/", Delay: 150 * time.Millisecond},
		{URL: "https://b.test/", Delay: 50 * time.Millisecond},
		{URL: "https://c.test/", Delay: 100 * time.Millisecond},
	}

	start := time.Now()
	results := collect(bf.Fetch(context.Background(), reqs))
	elapsed := time.Since(start)

	wantOrder := []string{"https://b.test/", "https://a.test/", "https://c.test/"}
	for i, want := range wantOrder {
		if results[i].URL != want {
			t.Errorf("results[%d].URL = %q, want %q", i, results[i].URL, want)
		}
	}

	// C must not start before group 1 finishes: slowest of group 1
	// plus C is the floor.
	if elapsed < 250*time.Millisecond {
		t.Errorf("Batch elapsed = %v, want >= 250ms (group barrier)", elapsed)
	}
}

func TestBatchFetcher_PeakInFlight(t *testing.T) {
	g := &fakeGetter{workDelay: 20 * time.Millisecond}
	bf, err := NewBatchFetcher(g, Config{BatchSize: 3})
	if err != nil {
		t.Fatalf("NewBatchFetcher: %v", err)
	}

	var urls []string
	for i := 0; i < 10; i++ {
		urls = append(urls, fmt.Sprintf("https://%d.test/", i))
	}

	results := collect(bf.Fetch(context.Background(), requestsFor(urls...)))

	assertPermutation(t, results, urls)
	if peak := g.peakInFlight(); peak > 3 {
		t.Errorf("Peak in-flight = %d, want <= 3", peak)
	}
}

func TestBatchFetcher_GroupCount(t *testing.T) {
	// 10 requests, batch size 4 -> ceil(10/4) = 3 sequential groups.
	// Equal per-request work makes total time a group-count proxy.
	const work = 40 * time.Millisecond
	g := &fakeGetter{workDelay: work}
	bf, err := NewBatchFetcher(g, Config{BatchSize: 4})
	if err != nil {
		t.Fatalf("NewBatchFetcher: %v", err)
	}

	var urls []string
	for i := 0; i < 10; i++ {
		urls = append(urls, fmt.Sprintf("https://%d.test/", i))
	}

	start := time.Now()
	results := collect(bf.Fetch(context.Background(), requestsFor(urls...)))
	elapsed := time.Since(start)

	if len(results) != 10 {
		t.Fatalf("Got %d results, want 10", len(results))
	}
	if elapsed < 3*work {
		t.Errorf("Batch elapsed = %v, want >= %v (3 groups)", elapsed, 3*work)
	}
}

func TestBatchFetcher_LimitExceedsInput(t *testing.T) {
	g := &fakeGetter{}
	bf, err := NewBatchFetcher(g, Config{BatchSize: 100})
	if err != nil {
		t.Fatalf("NewBatchFetcher: %v", err)
	}

	reqs := []Request{
		{URL: "https://a.test/", Delay: 150 * time.Millisecond},
		{URL: "https://b.test/", Delay: 50 * time.Millisecond},
		{URL: "https://c.test/", Delay: 100 * time.Millisecond},
	}

	start := time.Now()
	results := collect(bf.Fetch(context.Background(), reqs))
	elapsed := time.Since(start)

	if len(results) != 3 {
		t.Fatalf("Got %d results, want 3", len(results))
	}
	// One group, fully concurrent: bounded by the slowest request.
	if elapsed >= 300*time.Millisecond {
		t.Errorf("Batch elapsed = %v, want < 300ms (single concurrent group)", elapsed)
	}
}

func TestBatchFetcher_FailureDoesNotSuppressSiblings(t *testing.T) {
	g := &fakeGetter{
		fail: map[string]error{
			"https://b.test/": errors.New("tls handshake failure"),
		},
	}
	bf, err := NewBatchFetcher(g, Config{BatchSize: 2})
	if err != nil {
		t.Fatalf("NewBatchFetcher: %v", err)
	}

	urls := []string{"https://a.test/", "https://b.test/", "https://c.test/", "https://d.test/"}
	results := collect(bf.Fetch(context.Background(), requestsFor(urls...)))

	assertPermutation(t, results, urls)

	for _, r := range results {
		if r.URL == "https://b.test/" {
			if r.Status != StatusError {
				t.Errorf("b.test Status = %q, want error", r.Status)
			}
			if r.Error != "tls handshake failure" {
				t.Errorf("b.test Error = %q, want %q", r.Error, "tls handshake failure")
			}
		} else if r.Status != StatusSuccess {
			t.Errorf("%s Status = %q, want success", r.URL, r.Status)
		}
	}
}
