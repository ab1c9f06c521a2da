// Package testutil provides testing utilities for the fetch patterns.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior of a mock target path.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockTarget is a configurable HTTP server for testing fetch patterns.
// Besides serving canned responses it tracks request counts and the
// peak number of simultaneously served requests, so tests can verify
// concurrency invariants.
type MockTarget struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]MockResponse
	requests  int
	inFlight  int
	peak      int
}

// NewMockTarget creates and starts a mock target server. Paths without
// a configured response get 200 "OK".
func NewMockTarget() *MockTarget {
	mock := &MockTarget{
		responses: make(map[string]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests++
		mock.inFlight++
		if mock.inFlight > mock.peak {
			mock.peak = mock.inFlight
		}
		resp, configured := mock.responses[r.URL.Path]
		mock.mu.Unlock()

		defer func() {
			mock.mu.Lock()
			mock.inFlight--
			mock.mu.Unlock()
		}()

		if !configured {
			resp = MockResponse{StatusCode: http.StatusOK, Body: "OK"}
		}
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		w.WriteHeader(resp.StatusCode)
		w.Write([]byte(resp.Body))
	}))

	return mock
}

// URL returns the mock server base URL.
func (m *MockTarget) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockTarget) Close() {
	m.server.Close()
}

// SetResponse configures the response for a path.
func (m *MockTarget) SetResponse(path string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = resp
}

// Requests returns the total number of requests served.
func (m *MockTarget) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

// PeakInFlight returns the maximum number of requests served
// simultaneously since the last Reset.
func (m *MockTarget) PeakInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peak
}

// Reset clears request counters and peak tracking.
func (m *MockTarget) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = 0
	m.peak = 0
}
