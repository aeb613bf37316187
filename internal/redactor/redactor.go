// Package redactor removes personally identifiable information from
// transaction descriptions before they can reach any external service, and
// drops credit transactions so only actual spending is analyzed.
package redactor

import (
	"regexp"
	"strings"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
)

var (
	mobilePattern  = regexp.MustCompile(`\b\d{10}\b`)
	upiIDPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\b`)
	accountPattern = regexp.MustCompile(`\b\d{8,}\b`)
)

// Outcome is the result of redacting a batch.
type Outcome struct {
	Transactions    []models.Transaction
	PIIRedacted     int // transactions with at least one redacted field
	CreditsFiltered int // credit transactions dropped
}

// Redactor applies pattern-based substitution to descriptions.
type Redactor struct {
	logger logging.Logger
}

// NewRedactor creates a Redactor.
func NewRedactor(logger logging.Logger) *Redactor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Redactor{logger: logger}
}

// Redact filters out credit transactions and fills RedactedDescription on
// the remaining debits. The raw description is kept on the transaction for
// final reporting; only the redacted text may leave the process.
func (r *Redactor) Redact(transactions []models.Transaction) Outcome {
	outcome := Outcome{
		Transactions: make([]models.Transaction, 0, len(transactions)),
	}

	for _, tx := range transactions {
		if tx.Direction == models.DirectionCredit {
			outcome.CreditsFiltered++
			continue
		}

		redacted, changed := redactDescription(tx.Description)
		if changed {
			outcome.PIIRedacted++
		}
		tx.RedactedDescription = redacted
		outcome.Transactions = append(outcome.Transactions, tx)
	}

	r.logger.Info("PII redaction complete",
		logging.Field{Key: "redacted", Value: outcome.PIIRedacted},
		logging.Field{Key: "credits_filtered", Value: outcome.CreditsFiltered},
		logging.Field{Key: "debits", Value: len(outcome.Transactions)})
	return outcome
}

// redactDescription substitutes mobile numbers, UPI ids and long digit runs
// (account numbers). Mobile numbers are replaced before the generic digit
// rule so they get the more specific placeholder.
func redactDescription(description string) (string, bool) {
	redacted := description

	redacted = mobilePattern.ReplaceAllString(redacted, "[MOBILE_REDACTED]")
	redacted = upiIDPattern.ReplaceAllString(redacted, "[UPI_ID_REDACTED]")
	redacted = accountPattern.ReplaceAllString(redacted, "[ACCOUNT_REDACTED]")

	return redacted, !strings.EqualFold(redacted, description)
}
