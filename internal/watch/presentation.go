package watch

import "stackpad/backend/internal/health"

// ANSI colors for terminal rendering.
const (
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGrey   = "\033[90m"
	colorReset  = "\033[0m"
)

// View is how one status renders. Pure presentation data; no behavior.
type View struct {
	Label  string
	Symbol string
	Color  string
}

// Presentation maps any status string to a View. Total over its input:
// matching is case-insensitive and anything unrecognized (including the
// empty string) gets the neutral unknown presentation rather than failing.
// This is the only defense against a future status value reaching the
// renderer.
func Presentation(raw string) View {
	switch health.ParseStatus(raw) {
	case health.StatusHealthy:
		return View{Label: "HEALTHY", Symbol: "●", Color: colorGreen}
	case health.StatusUnhealthy:
		return View{Label: "UNHEALTHY", Symbol: "●", Color: colorRed}
	case health.StatusError:
		return View{Label: "ERROR", Symbol: "✗", Color: colorYellow}
	default:
		return View{Label: "UNKNOWN", Symbol: "○", Color: colorGrey}
	}
}

// Colorize wraps text in the view's color escape.
func (v View) Colorize(text string) string {
	if v.Color == "" {
		return text
	}
	return v.Color + text + colorReset
}
