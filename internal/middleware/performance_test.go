// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/toolrank/internal/logging"
)

func TestPerformanceMonitor_Stats(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100, 0)
	for _, d := range []int64{10, 20, 30, 40, 100} {
		pm.Record(RequestSample{Route: "/a", Method: http.MethodGet, DurationMS: d})
	}
	pm.Record(RequestSample{Route: "/b", Method: http.MethodGet, DurationMS: 5})

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	a := stats[0]
	if a.Route != "GET /a" || a.RequestCount != 5 {
		t.Errorf("busiest route = %+v, want GET /a with 5 requests", a)
	}
	if a.AvgMS != 40 || a.P50MS != 30 || a.MaxMS != 100 {
		t.Errorf("GET /a stats = %+v, want avg 40, p50 30, max 100", a)
	}
}

func TestPerformanceMonitor_WindowEvictsOldest(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3, 0)
	for i := int64(1); i <= 5; i++ {
		pm.Record(RequestSample{Route: "/a", Method: http.MethodGet, DurationMS: i})
	}

	recent := pm.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("len(Recent) = %d, want 3", len(recent))
	}
	if recent[0].DurationMS != 3 || recent[2].DurationMS != 5 {
		t.Errorf("window = %v, want samples 3..5", recent)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sorted []int64
		p      float64
		want   int64
	}{
		{nil, 0.5, 0},
		{[]int64{7}, 0.99, 7},
		{[]int64{1, 2, 3, 4, 5}, 0.5, 3},
		{[]int64{1, 2, 3, 4, 5}, 1, 5},
	}
	for _, tt := range tests {
		if got := percentile(tt.sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v, %v) = %d, want %d", tt.sorted, tt.p, got, tt.want)
		}
	}
}

// TestPerformanceMonitor_Middleware swaps the global logger, so it does not run in parallel.
func TestPerformanceMonitor_Middleware(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	pm := NewPerformanceMonitor(10, 50*time.Millisecond)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pm.now = func() time.Time {
		clock = clock.Add(60 * time.Millisecond)
		return clock
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(pm.Middleware)
	r.Get("/slow/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow/42", nil))

	recent := pm.Recent(1)
	if len(recent) != 1 {
		t.Fatal("expected one recorded sample")
	}
	if recent[0].Route != "/slow/{id}" || recent[0].StatusCode != http.StatusAccepted {
		t.Errorf("sample = %+v, want route /slow/{id} with status 202", recent[0])
	}

	out := buf.String()
	if !strings.Contains(out, "Slow request detected") {
		t.Errorf("expected slow request warning, got %q", out)
	}
	if !strings.Contains(out, rec.Header().Get(RequestIDHeader)) {
		t.Errorf("slow request log should carry the request id, got %q", out)
	}
}
