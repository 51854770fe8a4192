package config

import (
	"fmt"

	"github.com/rezkam/taskmate/internal/env"
)

// TestConfig holds configuration for store integration tests.
type TestConfig struct {
	DSN string `env:"TASKMATE_TEST_DB_DSN"`
}

// LoadTestConfig reads the test database DSN. ok is false when it is unset,
// in which case callers skip.
func LoadTestConfig() (cfg *TestConfig, ok bool, err error) {
	cfg = &TestConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, false, fmt.Errorf("failed to load test config: %w", err)
	}
	return cfg, cfg.DSN != "", nil
}
