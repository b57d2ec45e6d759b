package config

import (
	"fmt"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Dispatch.Mode != "" && !domain.IntakeMode(c.Dispatch.Mode).IsValid() {
		return fmt.Errorf("dispatch.mode must be %q or %q (got %q)", domain.ModeSync, domain.ModeAsync, c.Dispatch.Mode)
	}
	if c.Dispatch.MaxAttempts <= 0 {
		return fmt.Errorf("dispatch.max_attempts must be > 0 (got %d)", c.Dispatch.MaxAttempts)
	}
	if c.Dispatch.BatchSize <= 0 {
		return fmt.Errorf("dispatch.batch_size must be > 0 (got %d)", c.Dispatch.BatchSize)
	}
	if c.Dispatch.Workers <= 0 {
		return fmt.Errorf("dispatch.workers must be > 0 (got %d)", c.Dispatch.Workers)
	}
	if c.Dispatch.LeaseTimeout <= 0 {
		return fmt.Errorf("dispatch.lease_timeout must be > 0 (got %v)", c.Dispatch.LeaseTimeout)
	}

	if c.Analyzer.RemoteEnabled() {
		if c.Analyzer.Model == "" {
			return fmt.Errorf("analyzer.model is required when analyzer.api_key is set")
		}
		if c.Analyzer.MaxRetries < 0 {
			return fmt.Errorf("analyzer.max_retries must be >= 0 (got %d)", c.Analyzer.MaxRetries)
		}
	}

	return nil
}

// IntakeMode resolves the configured intake strategy. An empty mode
// defaults to async: the server always has the dispatch queue available.
func (c *Config) IntakeMode() domain.IntakeMode {
	if c.Dispatch.Mode == "" {
		return domain.ModeAsync
	}
	return domain.IntakeMode(c.Dispatch.Mode)
}
