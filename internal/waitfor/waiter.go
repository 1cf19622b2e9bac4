// Package waitfor implements the parallel readiness waiter: one bounded
// retry loop per named target, no cancel-on-first-failure, overall success
// only when every target came up within its budget.
package waitfor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"stackpad/backend/internal/config"
)

// Target is one named URL to wait on.
type Target struct {
	Name string
	URL  string
}

// Result is a target's terminal outcome. Exactly one Result is produced per
// target.
type Result struct {
	Target   Target
	OK       bool
	Attempts int
	Elapsed  time.Duration
	// Err is the last attempt's failure; nil on success.
	Err error
}

// Options configures the wait loops. Zero values fall back to defaults.
type Options struct {
	// MaxWait is the cumulative budget per target.
	MaxWait time.Duration

	// Interval is the delay between attempts.
	Interval time.Duration

	// AttemptTimeout bounds a single attempt, independent of MaxWait.
	AttemptTimeout time.Duration

	// Progress, if set, receives one dot per failed attempt. Pure side
	// effect; it never influences the outcome.
	Progress io.Writer
}

func (o *Options) applyDefaults() {
	if o.MaxWait <= 0 {
		o.MaxWait = config.DefaultWaitMaxWait
	}
	if o.Interval <= 0 {
		o.Interval = config.DefaultWaitCheckInterval
	}
	if o.AttemptTimeout <= 0 {
		o.AttemptTimeout = config.DefaultWaitAttemptTimeout
	}
}

// Wait runs one loop per target concurrently and blocks until every loop has
// reached its own terminal outcome. A failed target never cancels its
// siblings; results come back in target order, one slot per target.
func Wait(ctx context.Context, targets []Target, opts Options) []Result {
	opts.applyDefaults()

	client := &http.Client{}
	results := make([]Result, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		i, target := i, target
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = waitOne(ctx, client, target, opts)
		}()
	}
	wg.Wait()

	return results
}

// AllOK reports whether every target reached success.
func AllOK(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

// waitOne polls a single target until success or budget exhaustion. With
// MaxWait 6s and Interval 2s against a target that never comes up, attempts
// land at elapsed 0, 2, 4 and failure is reported at elapsed >= 6.
func waitOne(ctx context.Context, client *http.Client, target Target, opts Options) Result {
	start := time.Now()
	attempts := 0
	var lastErr error

	for {
		if elapsed := time.Since(start); elapsed >= opts.MaxWait {
			if lastErr == nil {
				lastErr = fmt.Errorf("no attempt completed within %s", opts.MaxWait)
			}
			return Result{
				Target:   target,
				OK:       false,
				Attempts: attempts,
				Elapsed:  elapsed,
				Err:      lastErr,
			}
		}

		attempts++
		if err := attempt(ctx, client, target.URL, opts.AttemptTimeout); err != nil {
			lastErr = err
			if opts.Progress != nil {
				fmt.Fprint(opts.Progress, ".")
			}
			time.Sleep(opts.Interval)
			continue
		}

		return Result{
			Target:   target,
			OK:       true,
			Attempts: attempts,
			Elapsed:  time.Since(start),
		}
	}
}

// attempt issues one bounded GET; success is any 2xx response.
func attempt(ctx context.Context, client *http.Client, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
