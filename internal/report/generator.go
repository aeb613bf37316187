// Package report renders pipeline output for the presentation layer: a JSON
// aggregate report and a per-transaction CSV export.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"github.com/gocarina/gocsv"
)

// Generator renders reports in the supported formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a report Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{logger: logger}
}

// GenerateJSON renders the aggregate result as indented JSON.
func (g *Generator) GenerateJSON(result models.AggregateResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

// transactionRow is the CSV row shape for one estimated transaction.
type transactionRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Source      string `csv:"classification_source"`
	CarbonMin   string `csv:"carbon_kg_min"`
	CarbonMax   string `csv:"carbon_kg_max"`
}

// WriteTransactionsCSV writes the estimated transactions as CSV. Raw
// descriptions are used here: the report stays local, unlike classifier
// requests which only ever see redacted text.
func (g *Generator) WriteTransactionsCSV(transactions []models.Transaction, w io.Writer) error {
	rows := make([]transactionRow, 0, len(transactions))
	for _, tx := range transactions {
		row := transactionRow{
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			Amount:      tx.Amount.String(),
			Category:    tx.Category.String(),
			Source:      string(tx.Source),
		}
		if tx.Carbon != nil {
			row.CarbonMin = fmt.Sprintf("%.2f", tx.Carbon.Min)
			row.CarbonMax = fmt.Sprintf("%.2f", tx.Carbon.Max)
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write transactions CSV: %w", err)
	}

	g.logger.Debug("Transactions CSV written",
		logging.Field{Key: "rows", Value: len(rows)})
	return nil
}

// WriteHighValueCSV writes the excluded high-value transactions as CSV.
func (g *Generator) WriteHighValueCSV(excluded []models.HighValueTransaction, w io.Writer) error {
	type highValueRow struct {
		Date        string `csv:"date"`
		Amount      string `csv:"amount"`
		Description string `csv:"truncated_description"`
		Reason      string `csv:"reason"`
	}

	rows := make([]highValueRow, 0, len(excluded))
	for _, tx := range excluded {
		rows = append(rows, highValueRow{
			Date:        tx.Date.Format("2006-01-02"),
			Amount:      tx.Amount.String(),
			Description: tx.TruncatedDescription,
			Reason:      tx.Reason,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write high-value CSV: %w", err)
	}
	return nil
}
