package catalog

import (
	"fmt"

	"tidy/internal/config"
	"tidy/internal/services"
)

// Catalog bundles the category registry, subcategory rules, and routing
// table for one run. It is built once from configuration and treated as
// read-only afterwards.
type Catalog struct {
	Registry *Registry
	Rules    *RuleSet
	Routing  *RoutingTable
}

// Placement is the outcome of the rule passes for one file.
type Placement struct {
	Category    string
	Subcategory string
	Routed      bool
}

// FromConfig assembles a catalog from validated configuration. Routing
// rules pointing at unknown categories are kept but never applied.
func FromConfig(cfg *config.Config) (*Catalog, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "from-config",
			"configuration must not be nil", nil)
	}
	registry, err := NewRegistry(cfg.Categories)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(cfg.Subcategories))
	for _, sub := range cfg.Subcategories {
		if !registry.Contains(sub.Parent) {
			return nil, services.Wrap(services.ErrRuleConfig, "catalog", "from-config",
				fmt.Sprintf("subcategory %q references unknown parent %q", sub.Name, sub.Parent), nil)
		}
		rules = append(rules, Rule{
			Name:              sub.Name,
			Parent:            sub.Parent,
			Keywords:          sub.Keywords,
			Patterns:          sub.Patterns,
			Extensions:        sub.Extensions,
			MinKeywordMatches: sub.MinKeywordMatches,
		})
	}

	routes := make([]RoutingRule, 0, len(cfg.Routing))
	for _, rule := range cfg.Routing {
		routes = append(routes, RoutingRule{From: rule.From, To: rule.To, Detector: rule.Detector})
	}

	return &Catalog{
		Registry: registry,
		Rules:    NewRuleSet(rules),
		Routing:  NewRoutingTable(routes),
	}, nil
}

// Apply runs the subcategory pass and then the routing pass for a file
// classified under category by the named detector. A routed category is
// not re-tested against subcategory rules, so a subcategory found under
// the pre-route parent is dropped when routing fires. Routes whose
// target is not in the registry are ignored.
func (c *Catalog) Apply(detector, category, filename, extension, excerpt string) Placement {
	placement := Placement{Category: category}
	if sub, ok := c.Rules.ResolveSubcategory(category, filename, extension, excerpt); ok {
		placement.Subcategory = sub
	}
	if target, ok := c.Routing.Remap(detector, category); ok {
		if c.Registry.Contains(target) {
			placement.Category = target
			placement.Subcategory = ""
			placement.Routed = true
		}
	}
	return placement
}
