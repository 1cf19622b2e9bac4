// Package watch implements the recurring health watcher: a cancellable
// repeating task that polls the composite health endpoint and keeps the most
// recent result for rendering.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"stackpad/backend/internal/health"
)

const (
	defaultInterval       = 5 * time.Second
	defaultAttemptTimeout = 3 * time.Second
	maxResponseBodySize   = 1 << 20
)

// Snapshot is what a renderer sees. Checked is false until the first
// evaluation completes, which is the "loading" presentation.
type Snapshot struct {
	State   health.State
	Checked bool
}

// Options configures a Watcher. Zero values fall back to defaults.
type Options struct {
	// Interval between evaluations. Fixed; no backoff, no jitter.
	Interval time.Duration

	// AttemptTimeout bounds a single evaluation attempt.
	AttemptTimeout time.Duration

	// OnUpdate, if set, is invoked after each completed evaluation with the
	// new snapshot. Called from the evaluation goroutine.
	OnUpdate func(Snapshot)
}

// Watcher polls a health endpoint on a fixed interval. It owns its timer:
// Start launches the loop, Stop cancels it idempotently, and no evaluation
// is published after Stop returns. Each evaluation runs independently, so a
// slow attempt never delays the next scheduled tick; the last completed
// result wins.
type Watcher struct {
	url      string
	interval time.Duration
	timeout  time.Duration
	onUpdate func(Snapshot)
	client   *http.Client

	mu      sync.Mutex
	last    Snapshot
	started bool
	stopped bool
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

// New creates a Watcher for the given composite health URL.
func New(url string, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = defaultAttemptTimeout
	}

	return &Watcher{
		url:      url,
		interval: opts.Interval,
		timeout:  opts.AttemptTimeout,
		onUpdate: opts.OnUpdate,
		client:   &http.Client{},
		last: Snapshot{
			State: health.State{Status: health.StatusUnknown},
		},
	}
}

// Start begins polling: one evaluation fires immediately, then one per
// interval. Idempotent; a second call is a no-op, as is Start after Stop.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.started = true
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.evaluateAsync(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.evaluateAsync(ctx)
			}
		}
	}()
}

// Stop cancels the polling loop and waits for in-flight work. Idempotent;
// after Stop returns, no further evaluation fires or publishes.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		if w.cancel != nil {
			w.cancel()
		}
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// Snapshot returns the most recently published state.
func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// evaluateAsync runs one evaluation in its own goroutine so a slow attempt
// cannot delay the ticker.
func (w *Watcher) evaluateAsync(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		state := w.evaluate(ctx)
		if ctx.Err() != nil {
			return
		}
		w.publish(state)
	}()
}

func (w *Watcher) publish(state health.State) {
	snap := Snapshot{State: state, Checked: true}

	w.mu.Lock()
	w.last = snap
	onUpdate := w.onUpdate
	w.mu.Unlock()

	if onUpdate != nil {
		onUpdate(snap)
	}
}

// evaluate performs one bounded request against the health endpoint. A
// transport failure is absorbed into a locally synthesized error state, the
// same shape the backend uses for its own faults minus the services map.
func (w *Watcher) evaluate(ctx context.Context) health.State {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	errState := func(msg string) health.State {
		return health.State{
			Status:    health.StatusError,
			Timestamp: time.Now().UTC(),
			Error:     msg,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return errState(fmt.Sprintf("cannot connect: %v", err))
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return errState(fmt.Sprintf("cannot connect: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	var state health.State
	limited := io.LimitReader(resp.Body, maxResponseBodySize)
	if err := json.NewDecoder(limited).Decode(&state); err != nil {
		return errState(fmt.Sprintf("invalid health response: %v", err))
	}

	// Re-parse through the boundary so an unrecognized status from a newer
	// backend degrades to unknown instead of leaking through.
	state.Status = health.ParseStatus(state.Status.String())
	if state.Timestamp.IsZero() {
		state.Timestamp = time.Now().UTC()
	}
	return state
}
