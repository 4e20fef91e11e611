// Package testsupport provides shared helpers for package tests: seeded
// configurations with per-test temp directories, file fixtures, and history
// store setup.
package testsupport

import (
	"path/filepath"
	"testing"

	"tidy/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "inbox")
	cfgVal.Paths.DestinationDir = filepath.Join(base, "organized")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Discovery.SkipRecentHours = 0

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCategories overrides the category list on the test config.
func WithCategories(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Categories = names
	}
}

// WithThreshold sets the confidence threshold on the test config.
func WithThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Detection.ConfidenceThreshold = threshold
	}
}

// WithSubcategory appends a subcategory rule to the test config.
func WithSubcategory(rule config.Subcategory) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Subcategories = append(b.cfg.Subcategories, rule)
	}
}

// WithRouting appends a routing rule to the test config.
func WithRouting(rule config.Routing) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Routing = append(b.cfg.Routing, rule)
	}
}
