// Package extractor parses raw statement text into transaction records. It
// handles the common "date description amount direction" line layouts that
// bank statements reduce to once their PDF text is extracted. Lines that do
// not look like transactions are skipped; lines that look like transactions
// but fail validation are reported as warnings, not run failures.
package extractor

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
	"time"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionLine matches "02/01/2024 SWIGGY ORDER 450.00 DR" style rows,
// tolerating comma-grouped amounts and DR/CR or DEBIT/CREDIT suffixes.
var transactionLine = regexp.MustCompile(
	`^(\d{2}[/-]\d{2}[/-]\d{4})\s+(.+?)\s+([\d,]+(?:\.\d{1,2})?)\s+(DR|CR|DEBIT|CREDIT)\s*$`)

var dateLayouts = []string{"02/01/2006", "02-01-2006"}

// Outcome is the result of extracting a statement.
type Outcome struct {
	Transactions []models.Transaction
	// Warnings carries one entry per line that looked like a transaction
	// but was malformed (bad date, negative amount).
	Warnings []string
	// SkippedLines counts lines that did not resemble transactions at all
	// (headers, footers, balances).
	SkippedLines int
}

// Extractor parses statement text.
type Extractor struct {
	logger logging.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{logger: logger}
}

// Extract parses the raw text into transactions. Every transaction gets a
// fresh unique id; the fallback classifier later relies on ids, not
// positions, to merge results.
func (e *Extractor) Extract(rawText string) Outcome {
	var outcome Outcome

	scanner := bufio.NewScanner(strings.NewReader(rawText))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		match := transactionLine.FindStringSubmatch(line)
		if match == nil {
			outcome.SkippedLines++
			continue
		}

		tx, err := parseLine(match)
		if err != nil {
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		outcome.Transactions = append(outcome.Transactions, tx)
	}

	e.logger.Info("Transaction extraction complete",
		logging.Field{Key: "transactions", Value: len(outcome.Transactions)},
		logging.Field{Key: "warnings", Value: len(outcome.Warnings)},
		logging.Field{Key: "skipped_lines", Value: outcome.SkippedLines})
	return outcome
}

func parseLine(match []string) (models.Transaction, error) {
	date, err := parseDate(match[1])
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(match[3], ",", ""))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("unparseable amount %q", match[3])
	}
	if amount.IsNegative() {
		return models.Transaction{}, fmt.Errorf("negative amount %s", amount)
	}

	direction := models.DirectionDebit
	switch strings.ToUpper(match[4]) {
	case "CR", "CREDIT":
		direction = models.DirectionCredit
	}

	return models.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: strings.TrimSpace(match[2]),
		Amount:      amount,
		Direction:   direction,
		Source:      models.SourceUnresolved,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
