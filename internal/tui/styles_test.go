package tui

import (
	"strings"
	"testing"
)

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2.5, "↑"},
		{-0.1, "↓"},
		{0, "→"},
	}

	for _, tt := range tests {
		if got := formatSigned(tt.v); got != tt.want {
			t.Errorf("formatSigned(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestRenderMetric_Trend(t *testing.T) {
	plain := RenderMetric("Load (7d)", "125", "")
	if !strings.Contains(plain, "125") || strings.ContainsAny(plain, "↑↓→") {
		t.Errorf("RenderMetric without trend = %q, want no marker", plain)
	}

	flat := RenderMetric("Ramp (7d)", "0.0", formatSigned(0))
	if !strings.Contains(flat, "→") {
		t.Errorf("RenderMetric flat = %q, want → marker", flat)
	}
}
