package extractor

import (
	"fmt"
	"io"
	"strings"
	"time"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// csvRow is the row shape for CSV statement imports.
type csvRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Direction   string `csv:"direction"`
}

var csvDateLayouts = append([]string{"2006-01-02"}, dateLayouts...)

// ExtractCSV parses a CSV statement export with date, description, amount
// and direction columns. Row-level problems become warnings; the error
// return is reserved for unreadable input.
func (e *Extractor) ExtractCSV(r io.Reader) (Outcome, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return Outcome{}, fmt.Errorf("failed to parse CSV statement: %w", err)
	}

	var outcome Outcome
	for i, row := range rows {
		tx, err := parseCSVRow(row)
		if err != nil {
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		outcome.Transactions = append(outcome.Transactions, tx)
	}

	e.logger.Info("CSV statement extraction complete",
		logging.Field{Key: "transactions", Value: len(outcome.Transactions)},
		logging.Field{Key: "warnings", Value: len(outcome.Warnings)})
	return outcome, nil
}

func parseCSVRow(row csvRow) (models.Transaction, error) {
	var date time.Time
	var err error
	for _, layout := range csvDateLayouts {
		if date, err = time.Parse(layout, strings.TrimSpace(row.Date)); err == nil {
			break
		}
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("unparseable date %q", row.Date)
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(row.Amount), ",", ""))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("unparseable amount %q", row.Amount)
	}
	if amount.IsNegative() {
		return models.Transaction{}, fmt.Errorf("negative amount %s", amount)
	}

	var direction models.Direction
	switch strings.ToUpper(strings.TrimSpace(row.Direction)) {
	case "DR", "DEBIT":
		direction = models.DirectionDebit
	case "CR", "CREDIT":
		direction = models.DirectionCredit
	default:
		return models.Transaction{}, fmt.Errorf("unknown direction %q", row.Direction)
	}

	return models.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: strings.TrimSpace(row.Description),
		Amount:      amount,
		Direction:   direction,
		Source:      models.SourceUnresolved,
	}, nil
}
