package health

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"healthy", StatusHealthy},
		{"HEALTHY", StatusHealthy},
		{" Healthy ", StatusHealthy},
		{"unhealthy", StatusUnhealthy},
		{"Unhealthy", StatusUnhealthy},
		{"error", StatusError},
		{"ERROR", StatusError},
		{"unknown", StatusUnknown},
		{"", StatusUnknown},
		{"degraded", StatusUnknown},
		{"garbage-value-42", StatusUnknown},
		{"\t\n", StatusUnknown},
	}

	for _, c := range cases {
		if got := ParseStatus(c.in); got != c.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusHealthy.String() != "healthy" {
		t.Errorf("Expected healthy, got %s", StatusHealthy.String())
	}
	if StatusUnknown.String() != "unknown" {
		t.Errorf("Expected unknown, got %s", StatusUnknown.String())
	}
}
