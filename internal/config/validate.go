package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateSubcategories(); err != nil {
		return err
	}
	if err := c.validateRouting(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return errors.New("paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DestinationDir) == "" {
		return errors.New("paths.destination_dir must be set")
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.ConfidenceThreshold < 0 || c.Detection.ConfidenceThreshold > 1 {
		return errors.New("detection.confidence_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateCategories() error {
	seen := make(map[string]struct{}, len(c.Categories))
	for _, name := range c.Categories {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("categories: duplicate name %q", name)
		}
		if strings.EqualFold(name, "Unsorted") {
			return errors.New("categories: Unsorted is reserved and always present")
		}
		seen[key] = struct{}{}
	}
	if len(c.Categories) > 98 {
		return errors.New("categories: at most 98 entries are supported")
	}
	return nil
}

func (c *Config) validateSubcategories() error {
	seen := make(map[string]struct{}, len(c.Subcategories))
	for _, sub := range c.Subcategories {
		if sub.Name == "" {
			return errors.New("subcategories: name must be set")
		}
		if sub.Parent == "" {
			return fmt.Errorf("subcategories: %q must declare a parent", sub.Name)
		}
		key := strings.ToLower(sub.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("subcategories: duplicate name %q", sub.Name)
		}
		seen[key] = struct{}{}
		if len(sub.Keywords) == 0 && len(sub.Patterns) == 0 && len(sub.Extensions) == 0 {
			return fmt.Errorf("subcategories: %q declares no rules", sub.Name)
		}
	}
	return nil
}

func (c *Config) validateRouting() error {
	for _, rule := range c.Routing {
		if rule.From == "" || rule.To == "" {
			return errors.New("routing: from and to must both be set")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
