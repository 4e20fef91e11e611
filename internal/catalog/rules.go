package catalog

import (
	"path/filepath"
	"strings"
)

// Rule routes files into a subcategory beneath its parent category. A
// rule matches when any of its clauses does: an extension equals one of
// Extensions, the filename matches one of the Patterns globs, or at
// least MinKeywordMatches of Keywords appear in the filename or excerpt.
type Rule struct {
	Name              string
	Parent            string
	Keywords          []string
	Patterns          []string
	Extensions        []string
	MinKeywordMatches int
}

// Matches tests the rule against a filename, its dotless extension, and
// an optional content excerpt.
func (r Rule) Matches(filename, extension, excerpt string) bool {
	ext := strings.ToLower(extension)
	for _, candidate := range r.Extensions {
		if ext != "" && ext == strings.ToLower(candidate) {
			return true
		}
	}

	lowerName := strings.ToLower(filename)
	for _, pattern := range r.Patterns {
		if ok, err := filepath.Match(strings.ToLower(pattern), lowerName); err == nil && ok {
			return true
		}
	}

	if len(r.Keywords) > 0 {
		text := lowerName
		if excerpt != "" {
			text += " " + strings.ToLower(excerpt)
		}
		min := r.MinKeywordMatches
		if min < 1 {
			min = 1
		}
		hits := 0
		for _, kw := range r.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				hits++
				if hits >= min {
					return true
				}
			}
		}
	}
	return false
}

// RuleSet evaluates subcategory rules in declaration order.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet preserves declaration order; the first matching rule wins.
func NewRuleSet(rules []Rule) *RuleSet {
	return &RuleSet{rules: append([]Rule(nil), rules...)}
}

// Rules returns the rules in declaration order.
func (s *RuleSet) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// ResolveSubcategory finds the first rule whose parent equals the given
// category and whose clauses match the file. Rules under other parents
// are never consulted.
func (s *RuleSet) ResolveSubcategory(parentCategory, filename, extension, excerpt string) (string, bool) {
	for _, rule := range s.rules {
		if !strings.EqualFold(rule.Parent, parentCategory) {
			continue
		}
		if rule.Matches(filename, extension, excerpt) {
			return rule.Name, true
		}
	}
	return "", false
}
