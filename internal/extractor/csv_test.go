package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
)

const sampleCSVStatement = `date,description,amount,direction
2024-01-02,SWIGGY ORDER 12345,450.00,DR
03/01/2024,SALARY JANUARY,"75,000.00",credit
2024-01-05,UBER RIDE,250.50,DEBIT
`

func TestExtractCSV(t *testing.T) {
	e := NewExtractor(&logging.MockLogger{})

	outcome, err := e.ExtractCSV(strings.NewReader(sampleCSVStatement))
	require.NoError(t, err)
	require.Len(t, outcome.Transactions, 3)
	assert.Empty(t, outcome.Warnings)

	first := outcome.Transactions[0]
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "SWIGGY ORDER 12345", first.Description)
	assert.True(t, first.Amount.Equal(decimal.NewFromFloat(450.00)))
	assert.Equal(t, models.DirectionDebit, first.Direction)
	assert.NotEmpty(t, first.ID)

	second := outcome.Transactions[1]
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), second.Date)
	assert.Equal(t, models.DirectionCredit, second.Direction)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(75000)))
}

func TestExtractCSV_MalformedRowsBecomeWarnings(t *testing.T) {
	e := NewExtractor(&logging.MockLogger{})

	input := `date,description,amount,direction
2024-13-40,GHOST MERCHANT,100.00,DR
2024-01-02,NEGATIVE,-50.00,DR
2024-01-03,SIDEWAYS,100.00,TRANSFER
2024-01-04,REAL MERCHANT,100.00,DR
`
	outcome, err := e.ExtractCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, outcome.Transactions, 1)
	assert.Equal(t, "REAL MERCHANT", outcome.Transactions[0].Description)

	require.Len(t, outcome.Warnings, 3)
	assert.Contains(t, outcome.Warnings[0], "row 1")
	assert.Contains(t, outcome.Warnings[0], "unparseable date")
	assert.Contains(t, outcome.Warnings[1], "negative amount")
	assert.Contains(t, outcome.Warnings[2], "unknown direction")
}

func TestExtractCSV_UnreadableInput(t *testing.T) {
	e := NewExtractor(&logging.MockLogger{})

	_, err := e.ExtractCSV(strings.NewReader(""))
	assert.Error(t, err)
}
