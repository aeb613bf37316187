// Package highvalue splits a transaction batch by amount before
// categorization. Spend-based emission factors assume price roughly tracks
// footprint; for big-ticket items (electronics, travel, property) it does
// not, so those transactions are set aside for activity-based estimation
// instead of being fed through the factor table.
package highvalue

import (
	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultThreshold is the default high-value cutoff in currency units.
var DefaultThreshold = decimal.NewFromInt(50000)

// truncateLen caps the description carried by an excluded transaction.
const truncateLen = 50

// Filter partitions transactions into regular and high-value sets.
type Filter struct {
	threshold decimal.Decimal
	logger    logging.Logger
}

// NewFilter creates a Filter with the given threshold. A zero or negative
// threshold falls back to the default.
func NewFilter(threshold decimal.Decimal, logger logging.Logger) *Filter {
	if threshold.LessThanOrEqual(decimal.Zero) {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Filter{threshold: threshold, logger: logger}
}

// Threshold returns the configured cutoff.
func (f *Filter) Threshold() decimal.Decimal {
	return f.threshold
}

// Split partitions the batch. Transactions with amount >= threshold go to the
// high-value set carrying only amount, date and a truncated description; the
// rest continue to categorization unchanged. The partition is total: every
// input ends up in exactly one of the two outputs.
func (f *Filter) Split(transactions []models.Transaction) (regular []models.Transaction, highValue []models.HighValueTransaction) {
	for _, tx := range transactions {
		if tx.Amount.GreaterThanOrEqual(f.threshold) {
			highValue = append(highValue, models.HighValueTransaction{
				Amount:               tx.Amount,
				TruncatedDescription: truncate(tx.EffectiveDescription()),
				Date:                 tx.Date,
				Reason:               models.ReasonActivityBased,
			})
			continue
		}
		regular = append(regular, tx)
	}

	if len(highValue) > 0 {
		total := decimal.Zero
		for _, tx := range highValue {
			total = total.Add(tx.Amount)
		}
		f.logger.Info("High-value transactions excluded from spend-based estimation",
			logging.Field{Key: "count", Value: len(highValue)},
			logging.Field{Key: "total_amount", Value: total.String()},
			logging.Field{Key: "threshold", Value: f.threshold.String()})
	}
	return regular, highValue
}

func truncate(s string) string {
	if len(s) <= truncateLen {
		return s
	}
	return s[:truncateLen] + "..."
}
