package catalog

import "strings"

// RoutingRule remaps a resolved category to another category. A rule
// with a Detector applies only when that detector produced the winning
// vote and takes precedence over a detector-less rule for the same
// category.
type RoutingRule struct {
	From     string
	To       string
	Detector string
}

// RoutingTable answers remap lookups. Detector-scoped rules outrank
// global ones; at most one remap applies per file.
type RoutingTable struct {
	global     map[string]string
	byDetector map[string]map[string]string
	rules      []RoutingRule
}

// NewRoutingTable indexes the given rules. Later rules for the same key
// overwrite earlier ones.
func NewRoutingTable(rules []RoutingRule) *RoutingTable {
	t := &RoutingTable{
		global:     make(map[string]string),
		byDetector: make(map[string]map[string]string),
		rules:      append([]RoutingRule(nil), rules...),
	}
	for _, rule := range rules {
		from := strings.ToLower(strings.TrimSpace(rule.From))
		if from == "" || strings.TrimSpace(rule.To) == "" {
			continue
		}
		if det := strings.ToLower(strings.TrimSpace(rule.Detector)); det != "" {
			scoped := t.byDetector[det]
			if scoped == nil {
				scoped = make(map[string]string)
				t.byDetector[det] = scoped
			}
			scoped[from] = rule.To
			continue
		}
		t.global[from] = rule.To
	}
	return t
}

// Rules returns the table's rules in declaration order.
func (t *RoutingTable) Rules() []RoutingRule {
	return append([]RoutingRule(nil), t.rules...)
}

// Remap returns the target category for the (detector, category) pair,
// consulting detector-scoped rules before global ones. The boolean
// reports whether any rule applied.
func (t *RoutingTable) Remap(detector, category string) (string, bool) {
	key := strings.ToLower(category)
	if scoped, ok := t.byDetector[strings.ToLower(detector)]; ok {
		if to, ok := scoped[key]; ok {
			return to, true
		}
	}
	if to, ok := t.global[key]; ok {
		return to, true
	}
	return category, false
}
