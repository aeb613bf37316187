// Package rules implements keyword-based category matching for transaction
// descriptions. Rule sets are ordered data: the matcher tests categories in
// the order they were loaded and the first category with a matching keyword
// wins, so priority decisions (transport before recreation) are encoded in
// the data file, not in code.
package rules

import (
	"fmt"
	"strings"

	"greenspend/carbonstmt/internal/models"
	"greenspend/carbonstmt/internal/pipeerror"
)

// Matcher maps a transaction description to at most one category using
// ordered substring keyword rules. A Matcher is immutable after construction
// and safe for concurrent use.
type Matcher struct {
	rules []compiledRule
}

type compiledRule struct {
	category models.Category
	keywords []string // lowercased
}

// NewMatcher compiles the given rule sets and validates the data integrity
// invariants: every category must belong to the official enumeration, and no
// keyword may appear in two categories' rule sets. A violation returns a
// ConfigurationError; silently letting priority order pick a winner would
// hide a data bug.
func NewMatcher(ruleSets []models.CategoryRule) (*Matcher, error) {
	if len(ruleSets) == 0 {
		return nil, &pipeerror.ConfigurationError{
			Component: "rules",
			Reason:    "no keyword rule sets loaded",
		}
	}

	seen := make(map[string]models.Category)
	compiled := make([]compiledRule, 0, len(ruleSets))

	for _, ruleSet := range ruleSets {
		if !ruleSet.Category.IsValid() {
			return nil, &pipeerror.ConfigurationError{
				Component: "rules",
				Reason:    fmt.Sprintf("unknown category %q in rule set", ruleSet.Category),
			}
		}

		keywords := make([]string, 0, len(ruleSet.Keywords))
		for _, keyword := range ruleSet.Keywords {
			normalized := strings.ToLower(strings.TrimSpace(keyword))
			if normalized == "" {
				continue
			}
			if owner, dup := seen[normalized]; dup {
				return nil, &pipeerror.ConfigurationError{
					Component: "rules",
					Reason: fmt.Sprintf("keyword %q appears in both %s and %s",
						normalized, owner, ruleSet.Category),
				}
			}
			seen[normalized] = ruleSet.Category
			keywords = append(keywords, normalized)
		}
		compiled = append(compiled, compiledRule{
			category: ruleSet.Category,
			keywords: keywords,
		})
	}

	return &Matcher{rules: compiled}, nil
}

// Match returns the category for the description, or false when no keyword
// matches. Matching is case-insensitive substring containment, first match
// wins across categories in load order.
func (m *Matcher) Match(description string) (models.Category, bool) {
	normalized := strings.ToLower(description)
	for _, rule := range m.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// KeywordCount returns the number of keywords per category, for diagnostics.
func (m *Matcher) KeywordCount() map[models.Category]int {
	counts := make(map[models.Category]int, len(m.rules))
	for _, rule := range m.rules {
		counts[rule.category] = len(rule.keywords)
	}
	return counts
}
