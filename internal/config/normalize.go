package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDiscovery()
	c.normalizeRules()
	c.normalizeLogging()
	if c.Rename.MaxNameLength <= 0 {
		c.Rename.MaxNameLength = defaultMaxNameLength
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.DestinationDir, err = expandPath(c.Paths.DestinationDir); err != nil {
		return fmt.Errorf("paths.destination_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDiscovery() {
	patterns := make([]string, 0, len(c.Discovery.SkipPatterns))
	for _, p := range c.Discovery.SkipPatterns {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	c.Discovery.SkipPatterns = patterns
	if c.Discovery.SkipRecentHours < 0 {
		c.Discovery.SkipRecentHours = 0
	}
}

func (c *Config) normalizeRules() {
	categories := make([]string, 0, len(c.Categories))
	for _, name := range c.Categories {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	if len(categories) == 0 {
		categories = append(categories, defaultCategories...)
	}
	c.Categories = categories

	for i := range c.Subcategories {
		sub := &c.Subcategories[i]
		sub.Name = strings.TrimSpace(sub.Name)
		sub.Parent = strings.TrimSpace(sub.Parent)
		if sub.MinKeywordMatches <= 0 {
			sub.MinKeywordMatches = 1
		}
		for j, ext := range sub.Extensions {
			sub.Extensions[j] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		}
	}

	for i := range c.Routing {
		rule := &c.Routing[i]
		rule.From = strings.TrimSpace(rule.From)
		rule.To = strings.TrimSpace(rule.To)
		rule.Detector = strings.TrimSpace(rule.Detector)
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
