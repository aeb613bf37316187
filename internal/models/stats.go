package models

import (
	"greenspend/carbonstmt/internal/logging"
)

// ProcessingStats tracks per-run counters accumulated across pipeline stages.
type ProcessingStats struct {
	Extracted       int // transactions received from extraction
	CreditsFiltered int // credit transactions dropped before analysis
	PIIRedacted     int // descriptions that had at least one field redacted
	HighValue       int // transactions excluded by the high-value filter
	RuleBased       int // transactions categorized by keyword rules
	FallbackBased   int // transactions categorized by the external classifier
	Malformed       int // transactions excluded as malformed
	Warnings        int // per-transaction warnings emitted
}

// LogSummary logs a one-line summary of the run's counters.
func (s ProcessingStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}
	logger.Info("Processing summary",
		logging.Field{Key: "extracted", Value: s.Extracted},
		logging.Field{Key: "credits_filtered", Value: s.CreditsFiltered},
		logging.Field{Key: "pii_redacted", Value: s.PIIRedacted},
		logging.Field{Key: "high_value_excluded", Value: s.HighValue},
		logging.Field{Key: "rule_based", Value: s.RuleBased},
		logging.Field{Key: "fallback_based", Value: s.FallbackBased},
		logging.Field{Key: "malformed", Value: s.Malformed},
		logging.Field{Key: "warnings", Value: s.Warnings},
	)
}
