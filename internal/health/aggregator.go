package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"stackpad/backend/internal/logging"
)

// Aggregator runs all registered probes and folds their results into one
// State. Probes are injected at construction; the aggregator holds no global
// connection handles, so tests can substitute fakes freely.
type Aggregator struct {
	probes []Prober
}

// NewAggregator builds an aggregator over the given probes. Probe order
// determines nothing beyond log ordering; results are keyed by probe name.
func NewAggregator(probes ...Prober) *Aggregator {
	return &Aggregator{probes: probes}
}

// Probes returns the registered probes, for per-component endpoints that
// read a single probe directly.
func (a *Aggregator) Probes() []Prober {
	return a.probes
}

// Evaluate runs every probe concurrently and folds the outcomes:
// all healthy => healthy; any failed probe => unhealthy. A probe returning
// an error is an expected failure mode and maps to an unhealthy component;
// a panic anywhere in the evaluation is a fault of the aggregation itself
// and is recovered into an error-state result with the services map omitted.
// Nothing escapes to the serving process.
func (a *Aggregator) Evaluate(ctx context.Context) (state State) {
	defer func() {
		if r := recover(); r != nil {
			state = errorState(r)
		}
	}()

	statuses := make([]Status, len(a.probes))

	var (
		g       errgroup.Group
		faultMu sync.Mutex
		fault   any
	)
	for i, p := range a.probes {
		i, p := i, p
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					faultMu.Lock()
					if fault == nil {
						fault = r
					}
					faultMu.Unlock()
				}
			}()
			if err := p.Probe(ctx); err != nil {
				statuses[i] = StatusUnhealthy
				return fmt.Errorf("%s: %w", p.Name(), err)
			}
			statuses[i] = StatusHealthy
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Warn("health probe failed", "error", err.Error())
	}
	if fault != nil {
		return errorState(fault)
	}

	services := make(map[string]Status, len(a.probes))
	overall := StatusHealthy
	for i, p := range a.probes {
		services[p.Name()] = statuses[i]
		if statuses[i] != StatusHealthy {
			overall = StatusUnhealthy
		}
	}

	return State{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}

func errorState(cause any) State {
	logging.Error("health evaluation faulted", "panic", fmt.Sprintf("%v", cause))
	return State{
		Status:    StatusError,
		Timestamp: time.Now().UTC(),
		Error:     fmt.Sprintf("health evaluation failed: %v", cause),
	}
}

// CheckComponent evaluates a single probe, bypassing aggregation. The result
// carries no cross-component information. A panicking probe reads as
// unhealthy rather than taking the request down.
func CheckComponent(ctx context.Context, p Prober) ComponentState {
	status := StatusHealthy

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("probe panicked: %v", r)
			}
		}()
		return p.Probe(ctx)
	}()
	if err != nil {
		logging.Warn("component probe failed", "component", p.Name(), "error", err.Error())
		status = StatusUnhealthy
	}

	return ComponentState{
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}
