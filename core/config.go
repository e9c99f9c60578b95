package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	ServiceName      string   `koanf:"service_name" mapstructure:"service_name"`
	BackendBaseURL   string   `koanf:"backend_base_url" mapstructure:"backend_base_url"`
	TimeoutMS        int      `koanf:"timeout_ms" mapstructure:"timeout_ms"`
	CoupledTimeoutMS int      `koanf:"coupled_timeout_ms" mapstructure:"coupled_timeout_ms"`
	MaxAttempts      int      `koanf:"max_attempts" mapstructure:"max_attempts"`
	BackoffBaseMS    int      `koanf:"backoff_base_ms" mapstructure:"backoff_base_ms"`
	AllowedOrigins   []string `koanf:"allowed_origins" mapstructure:"allowed_origins"`
	HistoryLimit     int      `koanf:"history_limit" mapstructure:"history_limit"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:      "bridge",
		BackendBaseURL:   "http://localhost:5000",
		TimeoutMS:        10_000,
		CoupledTimeoutMS: 60_000,
		MaxAttempts:      3,
		BackoffBaseMS:    1_000,
		AllowedOrigins:   []string{},
		HistoryLimit:     256,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	base := strings.TrimSpace(c.BackendBaseURL)
	if base == "" {
		return fmt.Errorf("core: backend_base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("core: backend_base_url %q is not an absolute url", base)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("core: timeout_ms must be positive")
	}
	if c.CoupledTimeoutMS <= 0 {
		return fmt.Errorf("core: coupled_timeout_ms must be positive")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("core: max_attempts must be at least 1")
	}
	if c.BackoffBaseMS < 0 {
		return fmt.Errorf("core: backoff_base_ms must not be negative")
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("core: history_limit must be at least 1")
	}
	return nil
}

func (c Config) TimeoutFor(class TimeoutClass) time.Duration {
	if class == TimeoutClassExtended {
		return time.Duration(c.CoupledTimeoutMS) * time.Millisecond
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c Config) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMS) * time.Millisecond
}
