package redactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
)

func TestRedactDescription(t *testing.T) {
	testCases := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "mobile number",
			description: "UPI TRANSFER TO 9876543210",
			want:        "UPI TRANSFER TO [MOBILE_REDACTED]",
		},
		{
			name:        "upi id",
			description: "PAYMENT someone@okhdfcbank SUCCESS",
			want:        "PAYMENT [UPI_ID_REDACTED] SUCCESS",
		},
		{
			name:        "account number",
			description: "NEFT FROM AC 123456789012345",
			want:        "NEFT FROM AC [ACCOUNT_REDACTED]",
		},
		{
			name:        "short digit runs kept",
			description: "SWIGGY ORDER 4521",
			want:        "SWIGGY ORDER 4521",
		},
		{
			name:        "no pii",
			description: "NETFLIX SUBSCRIPTION",
			want:        "NETFLIX SUBSCRIPTION",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := redactDescription(tc.description)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRedact(t *testing.T) {
	r := NewRedactor(&logging.MockLogger{})

	outcome := r.Redact([]models.Transaction{
		{ID: "t1", Description: "UPI TO 9876543210", Direction: models.DirectionDebit},
		{ID: "t2", Description: "SALARY CREDIT", Direction: models.DirectionCredit},
		{ID: "t3", Description: "SWIGGY ORDER", Direction: models.DirectionDebit},
	})

	require.Len(t, outcome.Transactions, 2)
	assert.Equal(t, 1, outcome.PIIRedacted)
	assert.Equal(t, 1, outcome.CreditsFiltered)

	first := outcome.Transactions[0]
	assert.Equal(t, "UPI TO [MOBILE_REDACTED]", first.RedactedDescription)
	// Raw description is kept for local reporting.
	assert.Equal(t, "UPI TO 9876543210", first.Description)

	assert.Equal(t, "SWIGGY ORDER", outcome.Transactions[1].RedactedDescription)
}

func TestRedact_EmptyBatch(t *testing.T) {
	r := NewRedactor(&logging.MockLogger{})
	outcome := r.Redact(nil)
	assert.Empty(t, outcome.Transactions)
	assert.Zero(t, outcome.PIIRedacted)
}
