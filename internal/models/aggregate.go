package models

import (
	"github.com/shopspring/decimal"
)

// CategoryTotal summarizes all estimated transactions of one category.
type CategoryTotal struct {
	Category    Category        `json:"category"`
	DisplayName string          `json:"display_name"`
	Carbon      CarbonRange     `json:"carbon"`
	Spend       decimal.Decimal `json:"spend"`
	Count       int             `json:"count"`
	// Percentage is this category's share of the run's total worst-case
	// (max) emissions, in percent.
	Percentage float64 `json:"percentage"`
}

// PeriodTotal is a time-bucketed carbon total. Period is "2006-W02" for ISO
// weeks and "2006-01" for months. Buckets with no transactions are absent
// from the series, not zero-filled; a gap means no data, not no activity.
type PeriodTotal struct {
	Period string      `json:"period"`
	Carbon CarbonRange `json:"carbon"`
	Count  int         `json:"count"`
}

// CategorizationEfficiency reports how much of the batch the keyword rules
// resolved without an external call.
type CategorizationEfficiency struct {
	RuleCount     int `json:"rule_count"`
	FallbackCount int `json:"fallback_count"`
}

// Ratio returns rule_count / (rule_count + fallback_count), or zero when
// nothing was categorized.
func (e CategorizationEfficiency) Ratio() float64 {
	total := e.RuleCount + e.FallbackCount
	if total == 0 {
		return 0
	}
	return float64(e.RuleCount) / float64(total)
}

// AggregateResult is the pipeline's final output. It is built once per run
// from the full transaction set and is immutable after construction.
type AggregateResult struct {
	Total             CarbonRange              `json:"total"`
	ByCategory        []CategoryTotal          `json:"by_category"`
	ByWeek            []PeriodTotal            `json:"by_week"`
	ByMonth           []PeriodTotal            `json:"by_month"`
	HighValueExcluded []HighValueTransaction   `json:"high_value_excluded"`
	Efficiency        CategorizationEfficiency `json:"categorization_efficiency"`
	TransactionCount  int                      `json:"transaction_count"`
	Warnings          []string                 `json:"warnings,omitempty"`
}

// TopCategories returns up to n categories with the highest worst-case
// emissions. ByCategory is already sorted descending by max, so this is a
// prefix.
func (r AggregateResult) TopCategories(n int) []CategoryTotal {
	if n > len(r.ByCategory) {
		n = len(r.ByCategory)
	}
	return r.ByCategory[:n]
}
