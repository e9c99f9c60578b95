package core

import (
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected valid defaults, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"empty service name", func(cfg *Config) { cfg.ServiceName = " " }},
		{"empty base url", func(cfg *Config) { cfg.BackendBaseURL = "" }},
		{"relative base url", func(cfg *Config) { cfg.BackendBaseURL = "/api" }},
		{"zero timeout", func(cfg *Config) { cfg.TimeoutMS = 0 }},
		{"zero coupled timeout", func(cfg *Config) { cfg.CoupledTimeoutMS = 0 }},
		{"zero attempts", func(cfg *Config) { cfg.MaxAttempts = 0 }},
		{"negative backoff", func(cfg *Config) { cfg.BackoffBaseMS = -1 }},
		{"zero history limit", func(cfg *Config) { cfg.HistoryLimit = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation failure")
			}
		})
	}
}

func TestConfig_TimeoutFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMS = 8_000
	cfg.CoupledTimeoutMS = 120_000

	if got := cfg.TimeoutFor(TimeoutClassStandard); got != 8*time.Second {
		t.Fatalf("expected standard timeout, got %s", got)
	}
	if got := cfg.TimeoutFor(TimeoutClassExtended); got != 2*time.Minute {
		t.Fatalf("expected extended timeout, got %s", got)
	}
}

func TestConfig_BackoffBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BackoffBaseMS = 250
	if got := cfg.BackoffBase(); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms backoff base, got %s", got)
	}
}
