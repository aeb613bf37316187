// Package categorizer assigns spend categories to transactions using two
// cooperating mechanisms:
//  1. Local keyword-rule matching (fast, deterministic, no external calls)
//  2. Fallback classification via an external text-classification service
//     for transactions the rules cannot resolve
package categorizer

import (
	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
	"greenspend/carbonstmt/internal/rules"
)

// RuleCategorizer applies the keyword matcher across a transaction batch and
// partitions it into rule-classified and unresolved transactions.
type RuleCategorizer struct {
	matcher *rules.Matcher
	logger  logging.Logger
}

// NewRuleCategorizer creates a RuleCategorizer backed by the given matcher.
func NewRuleCategorizer(matcher *rules.Matcher, logger logging.Logger) *RuleCategorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &RuleCategorizer{
		matcher: matcher,
		logger:  logger,
	}
}

// Categorize partitions the batch. Matched transactions come back with their
// category and SourceRule set; the rest are returned unchanged with
// SourceUnresolved for the fallback classifier. Input transactions are not
// mutated.
func (c *RuleCategorizer) Categorize(transactions []models.Transaction) (matched, unmatched []models.Transaction) {
	for _, tx := range transactions {
		category, found := c.matcher.Match(tx.EffectiveDescription())
		if found {
			matched = append(matched, tx.WithCategory(category, models.SourceRule))
			continue
		}
		tx.Source = models.SourceUnresolved
		unmatched = append(unmatched, tx)
	}

	c.logger.Debug("Rule categorization complete",
		logging.Field{Key: "matched", Value: len(matched)},
		logging.Field{Key: "unmatched", Value: len(unmatched)})
	return matched, unmatched
}
