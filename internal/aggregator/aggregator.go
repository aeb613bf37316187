// Package aggregator reduces a batch of estimated transactions into the
// pipeline's final multi-dimensional result: category totals, weekly and
// monthly series, and categorization efficiency.
package aggregator

import (
	"fmt"
	"math"
	"sort"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregator builds AggregateResults. It is stateless; one instance serves
// any number of runs.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// Aggregate reduces the estimated transactions plus the excluded high-value
// set into one immutable result. Range bounds are summed independently per
// bound: the aggregate min is "every transaction simultaneously best case",
// the max "every transaction simultaneously worst case".
func (a *Aggregator) Aggregate(
	estimated []models.Transaction,
	highValue []models.HighValueTransaction,
	warnings []string,
) models.AggregateResult {
	result := models.AggregateResult{
		HighValueExcluded: highValue,
		TransactionCount:  len(estimated),
		Warnings:          warnings,
	}

	type categoryAccumulator struct {
		carbon models.CarbonRange
		spend  decimal.Decimal
		count  int
	}
	byCategory := make(map[models.Category]*categoryAccumulator)
	byWeek := make(map[string]*models.PeriodTotal)
	byMonth := make(map[string]*models.PeriodTotal)

	for _, tx := range estimated {
		if tx.Carbon == nil {
			continue
		}
		carbon := *tx.Carbon
		result.Total = result.Total.Add(carbon)

		acc, ok := byCategory[tx.Category]
		if !ok {
			acc = &categoryAccumulator{spend: decimal.Zero}
			byCategory[tx.Category] = acc
		}
		acc.carbon = acc.carbon.Add(carbon)
		acc.spend = acc.spend.Add(tx.Amount)
		acc.count++

		accumulatePeriod(byWeek, isoWeekPeriod(tx), carbon)
		accumulatePeriod(byMonth, tx.Date.Format("2006-01"), carbon)

		switch tx.Source {
		case models.SourceRule:
			result.Efficiency.RuleCount++
		case models.SourceFallback:
			result.Efficiency.FallbackCount++
		}
	}

	result.Total = roundRange(result.Total)

	for category, acc := range byCategory {
		percentage := 0.0
		if result.Total.Max > 0 {
			percentage = round2(acc.carbon.Max / result.Total.Max * 100)
		}
		result.ByCategory = append(result.ByCategory, models.CategoryTotal{
			Category:    category,
			DisplayName: category.DisplayName(),
			Carbon:      roundRange(acc.carbon),
			Spend:       acc.spend,
			Count:       acc.count,
			Percentage:  percentage,
		})
	}
	sort.Slice(result.ByCategory, func(i, j int) bool {
		if result.ByCategory[i].Carbon.Max != result.ByCategory[j].Carbon.Max {
			return result.ByCategory[i].Carbon.Max > result.ByCategory[j].Carbon.Max
		}
		return result.ByCategory[i].Category < result.ByCategory[j].Category
	})

	result.ByWeek = sortedPeriods(byWeek)
	result.ByMonth = sortedPeriods(byMonth)

	a.logger.Info("Aggregation complete",
		logging.Field{Key: "transactions", Value: result.TransactionCount},
		logging.Field{Key: "categories", Value: len(result.ByCategory)},
		logging.Field{Key: "total_min_kg", Value: result.Total.Min},
		logging.Field{Key: "total_max_kg", Value: result.Total.Max})
	return result
}

// isoWeekPeriod renders a transaction date as its ISO week bucket key,
// e.g. "2024-W05". The ISO year can differ from the calendar year at year
// boundaries.
func isoWeekPeriod(tx models.Transaction) string {
	year, week := tx.Date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func accumulatePeriod(buckets map[string]*models.PeriodTotal, period string, carbon models.CarbonRange) {
	bucket, ok := buckets[period]
	if !ok {
		bucket = &models.PeriodTotal{Period: period}
		buckets[period] = bucket
	}
	bucket.Carbon = bucket.Carbon.Add(carbon)
	bucket.Count++
}

// sortedPeriods flattens the bucket map into a chronologically ordered
// sparse series. Periods with no transactions never appear; a gap is
// missing data, not zero activity.
func sortedPeriods(buckets map[string]*models.PeriodTotal) []models.PeriodTotal {
	periods := make([]models.PeriodTotal, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.Carbon = roundRange(bucket.Carbon)
		periods = append(periods, *bucket)
	}
	// "2006-W02" and "2006-01" keys both sort chronologically as strings.
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period < periods[j].Period
	})
	return periods
}

func roundRange(r models.CarbonRange) models.CarbonRange {
	return models.CarbonRange{Min: round2(r.Min), Max: round2(r.Max)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
