// Package health implements dependency probes and the aggregator that folds
// their results into a single composite status served over HTTP.
package health

import "strings"

// Status is the closed set of health states. String-typed for direct JSON
// serialization; all parsing from the outside world goes through ParseStatus.
type Status string

const (
	// StatusHealthy indicates every checked component is operational.
	StatusHealthy Status = "healthy"

	// StatusUnhealthy indicates at least one component failed its probe.
	StatusUnhealthy Status = "unhealthy"

	// StatusError indicates the evaluation itself faulted, as opposed to a
	// component failing its probe.
	StatusError Status = "error"

	// StatusUnknown is the client-side state before any evaluation has
	// completed, and the fallback for unrecognized input. The server never
	// produces it.
	StatusUnknown Status = "unknown"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus maps arbitrary input to a Status. Matching is case-insensitive
// and whitespace-tolerant; anything unrecognized (including the empty string)
// parses to StatusUnknown. It never fails, which is the only defense against
// a future status value reaching a consumer that predates it.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "healthy":
		return StatusHealthy
	case "unhealthy":
		return StatusUnhealthy
	case "error":
		return StatusError
	default:
		return StatusUnknown
	}
}
