package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction moved money out of or into the account.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// ClassificationSource records how a transaction received its category.
type ClassificationSource string

const (
	// SourceUnresolved marks a transaction that has not been categorized yet.
	SourceUnresolved ClassificationSource = "unresolved"
	// SourceRule marks a transaction categorized by the keyword matcher.
	SourceRule ClassificationSource = "rule"
	// SourceFallback marks a transaction categorized by the external classifier,
	// including transactions assigned miscellaneous after the classifier failed.
	SourceFallback ClassificationSource = "fallback"
)

// CarbonRange is a [min,max] CO2e estimate in kilograms. The range expresses
// factor uncertainty, not measurement error: min assumes the best-case
// emission intensity for the category, max the worst case.
type CarbonRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Add returns the element-wise sum of two ranges. Sums are taken
// independently per bound so the aggregate range reads as "all transactions
// simultaneously best case" vs "all simultaneously worst case".
func (r CarbonRange) Add(other CarbonRange) CarbonRange {
	return CarbonRange{Min: r.Min + other.Min, Max: r.Max + other.Max}
}

// IsZero reports whether both bounds are zero.
func (r CarbonRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Transaction is a single spend record flowing through the pipeline.
// Stages never mutate a transaction they received; they return copies with
// the stage's fields filled in.
type Transaction struct {
	ID                  string               `json:"id" csv:"id"`
	Date                time.Time            `json:"date" csv:"date"`
	Description         string               `json:"description" csv:"description"`
	RedactedDescription string               `json:"redacted_description" csv:"redacted_description"`
	Amount              decimal.Decimal      `json:"amount" csv:"amount"`
	Direction           Direction            `json:"direction" csv:"direction"`
	Category            Category             `json:"category,omitempty" csv:"category"`
	Source              ClassificationSource `json:"classification_source" csv:"classification_source"`
	Carbon              *CarbonRange         `json:"carbon_estimate,omitempty" csv:"-"`
}

// EffectiveDescription returns the redacted description when present,
// otherwise the raw one. Everything past the redaction stage must only see
// redacted text.
func (t Transaction) EffectiveDescription() string {
	if t.RedactedDescription != "" {
		return t.RedactedDescription
	}
	return t.Description
}

// IsClassified reports whether the transaction has been assigned a category.
func (t Transaction) IsClassified() bool {
	return t.Source != SourceUnresolved && t.Source != ""
}

// WithCategory returns a copy of the transaction with category and source set.
func (t Transaction) WithCategory(category Category, source ClassificationSource) Transaction {
	t.Category = category
	t.Source = source
	return t
}

// WithCarbon returns a copy of the transaction with the carbon estimate set.
func (t Transaction) WithCarbon(estimate CarbonRange) Transaction {
	t.Carbon = &estimate
	return t
}

// HighValueTransaction is a transaction excluded from spend-based estimation.
// Only the amount and a truncated description are exposed; big-ticket items
// need activity-based estimation because price does not track emissions.
type HighValueTransaction struct {
	Amount               decimal.Decimal `json:"amount" csv:"amount"`
	TruncatedDescription string          `json:"truncated_description" csv:"truncated_description"`
	Date                 time.Time       `json:"date" csv:"date"`
	Reason               string          `json:"reason" csv:"reason"`
}

// ReasonActivityBased is the reason attached to every excluded high-value
// transaction.
const ReasonActivityBased = "activity-based-estimation-required"
