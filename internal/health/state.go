package health

import "time"

// State is the composite health of a deployment at one instant. A State is
// built fresh on every evaluation and never mutated or cached afterwards.
type State struct {
	Status    Status            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]Status `json:"services,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ComponentState is the single-probe response shape. It carries no services
// map: per-component reads bypass aggregation entirely.
type ComponentState struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether the composite status allows callers to proceed.
func (s State) Healthy() bool {
	return s.Status == StatusHealthy
}
