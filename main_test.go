package main

import (
	"errors"
	"testing"

	"trainingload/internal/analysis"
	"trainingload/internal/config"
)

func TestApplyFlags_OnlyGivenFlagsOverride(t *testing.T) {
	opts, err := parseFlags([]string{"-atl", "10"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Data.ActivitiesDir = "/data/acts"
	applyFlags(&cfg, opts)

	if cfg.Trend.CTLDays != 42 {
		t.Errorf("Trend.CTLDays = %v, want 42", cfg.Trend.CTLDays)
	}
	if cfg.Trend.ATLDays != 10 {
		t.Errorf("Trend.ATLDays = %v, want 10", cfg.Trend.ATLDays)
	}
	if cfg.Data.ActivitiesDir != "/data/acts" {
		t.Errorf("Data.ActivitiesDir = %q, want /data/acts", cfg.Data.ActivitiesDir)
	}
}

func TestApplyFlags_ZeroTimeConstantFailsValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero ctl", []string{"-ctl", "0"}},
		{"zero atl", []string{"-atl=0"}},
		{"negative ctl", []string{"-ctl", "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}

			cfg := config.DefaultConfig()
			applyFlags(&cfg, opts)

			if err := cfg.Validate(); !errors.Is(err, analysis.ErrInvalidTimeConstant) {
				t.Errorf("Validate() error = %v, want ErrInvalidTimeConstant", err)
			}
		})
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	if _, err := parseFlags([]string{"-bogus"}); err == nil {
		t.Error("parseFlags() with unknown flag should fail")
	}
}
