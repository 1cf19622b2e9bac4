package api

import (
	"net/http"

	"stackpad/backend/internal/health"
	"stackpad/backend/internal/metrics"
)

// HealthHandler serves the composite health state. It is mounted twice: at
// the bare /health path so platform probes that only support plain paths can
// reach it, and under /api/health for application clients. 200 iff healthy;
// 503 for unhealthy or internal error, so callers can branch on the status
// code alone.
func HealthHandler(agg *health.Aggregator, reg *metrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := agg.Evaluate(r.Context())

		if reg != nil {
			reg.HealthEvaluationsTotal.WithLabelValues(state.Status.String()).Inc()
			for name, status := range state.Services {
				if status != health.StatusHealthy {
					reg.ProbeFailuresTotal.WithLabelValues(name).Inc()
				}
			}
		}

		code := http.StatusOK
		if !state.Healthy() {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, state)
	}
}

// ComponentHealthHandler serves a single probe's status, bypassing the
// aggregator entirely: the database endpoint never touches cache state and
// vice versa.
func ComponentHealthHandler(p health.Prober, reg *metrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := health.CheckComponent(r.Context(), p)

		if reg != nil && state.Status != health.StatusHealthy {
			reg.ProbeFailuresTotal.WithLabelValues(p.Name()).Inc()
		}

		code := http.StatusOK
		if state.Status != health.StatusHealthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, state)
	}
}
