package watch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"stackpad/backend/internal/health"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_ImmediateFirstEvaluation(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2026-01-01T00:00:00Z","services":{"database":"healthy","redis":"healthy"}}`))
	}))
	defer srv.Close()

	// Interval far longer than the test: any hit must be the immediate one.
	w := New(srv.URL, Options{Interval: time.Hour})
	w.Start(context.Background())
	defer w.Stop()

	if !waitFor(t, 2*time.Second, func() bool { return hits.Load() == 1 }) {
		t.Fatalf("Expected exactly one immediate evaluation, got %d", hits.Load())
	}

	if !waitFor(t, time.Second, func() bool { return w.Snapshot().Checked }) {
		t.Fatal("Expected snapshot to be published")
	}
	snap := w.Snapshot()
	if snap.State.Status != health.StatusHealthy {
		t.Errorf("Expected healthy snapshot, got %s", snap.State.Status)
	}
}

func TestWatcher_StopHaltsPolling(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	w := New(srv.URL, Options{Interval: 20 * time.Millisecond})
	w.Start(context.Background())

	if !waitFor(t, 2*time.Second, func() bool { return hits.Load() >= 2 }) {
		t.Fatalf("Expected recurring evaluations, got %d", hits.Load())
	}

	w.Stop()
	after := hits.Load()
	time.Sleep(100 * time.Millisecond)
	if got := hits.Load(); got != after {
		t.Errorf("Expected no evaluations after Stop, had %d then %d", after, got)
	}

	// Stop is idempotent.
	w.Stop()
}

func TestWatcher_TransportFailureSynthesizesErrorState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	w := New(srv.URL, Options{Interval: time.Hour})
	w.Start(context.Background())
	defer w.Stop()

	if !waitFor(t, 2*time.Second, func() bool { return w.Snapshot().Checked }) {
		t.Fatal("Expected snapshot to be published")
	}

	snap := w.Snapshot()
	if snap.State.Status != health.StatusError {
		t.Errorf("Expected error state, got %s", snap.State.Status)
	}
	if snap.State.Error == "" {
		t.Error("Expected diagnostic on synthesized error state")
	}
	if snap.State.Services != nil {
		t.Errorf("Expected no services on synthesized error state, got %v", snap.State.Services)
	}
}

func TestWatcher_UnrecognizedStatusDegradesToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"sparkling","timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	w := New(srv.URL, Options{Interval: time.Hour})
	w.Start(context.Background())
	defer w.Stop()

	if !waitFor(t, 2*time.Second, func() bool { return w.Snapshot().Checked }) {
		t.Fatal("Expected snapshot to be published")
	}
	if got := w.Snapshot().State.Status; got != health.StatusUnknown {
		t.Errorf("Expected unknown for unrecognized status, got %s", got)
	}
}

func TestWatcher_StartsUnknown(t *testing.T) {
	w := New("http://localhost:0/api/health", Options{})
	snap := w.Snapshot()
	if snap.Checked {
		t.Error("Expected unchecked snapshot before start")
	}
	if snap.State.Status != health.StatusUnknown {
		t.Errorf("Expected unknown before first evaluation, got %s", snap.State.Status)
	}
}

func TestWatcher_OnUpdateCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"unhealthy","timestamp":"2026-01-01T00:00:00Z","services":{"database":"healthy","redis":"unhealthy"}}`))
	}))
	defer srv.Close()

	updates := make(chan Snapshot, 1)
	w := New(srv.URL, Options{
		Interval: time.Hour,
		OnUpdate: func(s Snapshot) {
			select {
			case updates <- s:
			default:
			}
		},
	})
	w.Start(context.Background())
	defer w.Stop()

	select {
	case snap := <-updates:
		if snap.State.Status != health.StatusUnhealthy {
			t.Errorf("Expected unhealthy update, got %s", snap.State.Status)
		}
		if snap.State.Services["redis"] != health.StatusUnhealthy {
			t.Errorf("Expected redis unhealthy, got %v", snap.State.Services)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected OnUpdate to fire")
	}
}
