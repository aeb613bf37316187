// Package estimator converts categorized spend amounts into CO2e ranges
// using the emission factor table.
package estimator

import (
	"fmt"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
	"greenspend/carbonstmt/internal/pipeerror"

	"github.com/shopspring/decimal"
)

// factorScale converts currency units to the per-1000-units basis the
// factors are expressed in.
var factorScale = decimal.NewFromInt(1000)

// Estimator looks up a category's [min,max] emission intensity and scales it
// by the spend amount. Estimation is pure and deterministic; the factor
// table is read-only after construction.
type Estimator struct {
	factors map[models.Category]models.EmissionFactor
	logger  logging.Logger
}

// NewEstimator builds an Estimator and validates the factor table: every
// official category must have an entry with min_factor <= max_factor and no
// negative bounds. A gap in the table is a data-integrity bug surfaced at
// startup rather than mid-run.
func NewEstimator(factors []models.EmissionFactor, logger logging.Logger) (*Estimator, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	table := make(map[models.Category]models.EmissionFactor, len(factors))
	for _, factor := range factors {
		if !factor.Category.IsValid() {
			return nil, &pipeerror.ConfigurationError{
				Component: "estimator",
				Reason:    fmt.Sprintf("emission factor for unknown category %q", factor.Category),
			}
		}
		if factor.MinFactor < 0 || factor.MaxFactor < factor.MinFactor {
			return nil, &pipeerror.ConfigurationError{
				Component: "estimator",
				Reason: fmt.Sprintf("invalid factor range [%v,%v] for category %s",
					factor.MinFactor, factor.MaxFactor, factor.Category),
			}
		}
		table[factor.Category] = factor
	}

	for _, category := range models.AllCategories {
		if _, ok := table[category]; !ok {
			return nil, &pipeerror.ConfigurationError{
				Component: "estimator",
				Reason:    fmt.Sprintf("no emission factor entry for category %s", category),
			}
		}
	}

	return &Estimator{factors: table, logger: logger}, nil
}

// Factor returns the table entry for a category.
func (e *Estimator) Factor(category models.Category) (models.EmissionFactor, error) {
	factor, ok := e.factors[category]
	if !ok {
		return models.EmissionFactor{}, &pipeerror.ConfigurationError{
			Component: "estimator",
			Reason:    fmt.Sprintf("no emission factor entry for category %s", category),
		}
	}
	return factor, nil
}

// Factors returns the table entries in official category order.
func (e *Estimator) Factors() []models.EmissionFactor {
	entries := make([]models.EmissionFactor, 0, len(e.factors))
	for _, category := range models.AllCategories {
		if factor, ok := e.factors[category]; ok {
			entries = append(entries, factor)
		}
	}
	return entries
}

// Estimate computes the [min,max] CO2e range for one categorized
// transaction: amount/1000 x factor for each bound.
func (e *Estimator) Estimate(tx models.Transaction) (models.CarbonRange, error) {
	factor, err := e.Factor(tx.Category)
	if err != nil {
		return models.CarbonRange{}, err
	}

	amountThousands := tx.Amount.Div(factorScale)
	return models.CarbonRange{
		Min: amountThousands.Mul(decimal.NewFromFloat(factor.MinFactor)).InexactFloat64(),
		Max: amountThousands.Mul(decimal.NewFromFloat(factor.MaxFactor)).InexactFloat64(),
	}, nil
}

// EstimateBatch estimates every transaction in the batch, returning copies
// with the carbon estimate attached. It fails on the first missing factor;
// with a validated table that cannot happen for official categories.
func (e *Estimator) EstimateBatch(transactions []models.Transaction) ([]models.Transaction, error) {
	estimated := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		carbon, err := e.Estimate(tx)
		if err != nil {
			return nil, err
		}
		estimated = append(estimated, tx.WithCarbon(carbon))
	}

	e.logger.Debug("Carbon estimation complete",
		logging.Field{Key: "count", Value: len(estimated)})
	return estimated, nil
}
