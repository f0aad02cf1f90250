// Package testsupport provides shared fixtures for slate's tests: temp-dir
// configs, frame sequence fixtures, and an in-memory catalog.
package testsupport

import (
	"path/filepath"
	"testing"

	"slate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DeliveryRoot = filepath.Join(base, "deliveries")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Catalog.URL = "https://catalog.test/api"
	cfg.Catalog.ScriptName = "slate-test"
	cfg.Catalog.APIKey = "test-key"
	cfg.Catalog.ProjectID = 99
	cfg.Journal.Path = filepath.Join(base, "journal.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithJournalDisabled turns off the local delivery journal.
func WithJournalDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Journal.Enabled = false
	}
}

// WithDeliveryStatus overrides the ready-for-delivery status code.
func WithDeliveryStatus(status string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.DeliveryStatus = status
	}
}
