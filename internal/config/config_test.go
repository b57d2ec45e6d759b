package config

import (
	"testing"
	"time"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{DSN: "postgres://localhost/emolog"},
		Dispatch: DispatchConfig{
			BatchSize:    10,
			PollInterval: time.Second,
			MaxAttempts:  5,
			LeaseTimeout: time.Minute,
			Workers:      1,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad mode", func(c *Config) { c.Dispatch.Mode = "eventually" }},
		{"zero max attempts", func(c *Config) { c.Dispatch.MaxAttempts = 0 }},
		{"zero batch size", func(c *Config) { c.Dispatch.BatchSize = 0 }},
		{"zero workers", func(c *Config) { c.Dispatch.Workers = 0 }},
		{"zero lease timeout", func(c *Config) { c.Dispatch.LeaseTimeout = 0 }},
		{"remote without model", func(c *Config) {
			c.Analyzer.APIKey = "sk-test"
			c.Analyzer.Model = ""
		}},
		{"negative retries", func(c *Config) {
			c.Analyzer.APIKey = "sk-test"
			c.Analyzer.Model = "claude-3-5-haiku-latest"
			c.Analyzer.MaxRetries = -1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestIntakeMode_Resolution(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if got := cfg.IntakeMode(); got != domain.ModeAsync {
		t.Errorf("empty mode: got %s, want async", got)
	}

	cfg.Dispatch.Mode = "sync"
	if got := cfg.IntakeMode(); got != domain.ModeSync {
		t.Errorf("explicit sync: got %s, want sync", got)
	}
}

func TestAnalyzerConfig_RemoteEnabled(t *testing.T) {
	t.Parallel()

	if (AnalyzerConfig{}).RemoteEnabled() {
		t.Error("no api key should disable remote")
	}
	if !(AnalyzerConfig{APIKey: "sk-test"}).RemoteEnabled() {
		t.Error("api key should enable remote")
	}
}
