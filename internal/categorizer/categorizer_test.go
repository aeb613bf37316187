package categorizer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
	"greenspend/carbonstmt/internal/rules"
)

func newTestMatcher(t *testing.T) *rules.Matcher {
	t.Helper()
	matcher, err := rules.NewMatcher([]models.CategoryRule{
		{Category: models.CategoryFoodAndGroceries, Keywords: []string{"swiggy", "zomato"}},
		{Category: models.CategoryTransport, Keywords: []string{"uber", "makemytrip"}},
		{Category: models.CategoryRecreationLeisure, Keywords: []string{"netflix"}},
	})
	require.NoError(t, err)
	return matcher
}

func TestRuleCategorizer_Categorize(t *testing.T) {
	categorizer := NewRuleCategorizer(newTestMatcher(t), &logging.MockLogger{})

	transactions := []models.Transaction{
		{ID: "t1", Description: "SWIGGY ORDER", Amount: decimal.NewFromInt(450)},
		{ID: "t2", Description: "UBER RIDE", Amount: decimal.NewFromInt(250)},
		{ID: "t3", Description: "UNKNOWN MERCHANT", Amount: decimal.NewFromInt(100)},
	}

	matched, unmatched := categorizer.Categorize(transactions)

	require.Len(t, matched, 2)
	assert.Equal(t, models.CategoryFoodAndGroceries, matched[0].Category)
	assert.Equal(t, models.SourceRule, matched[0].Source)
	assert.Equal(t, models.CategoryTransport, matched[1].Category)

	require.Len(t, unmatched, 1)
	assert.Equal(t, "t3", unmatched[0].ID)
	assert.False(t, unmatched[0].IsClassified())
}

func TestRuleCategorizer_MatchesRedactedDescription(t *testing.T) {
	categorizer := NewRuleCategorizer(newTestMatcher(t), &logging.MockLogger{})

	transactions := []models.Transaction{
		{
			ID:                  "t1",
			Description:         "NETFLIX 9876543210",
			RedactedDescription: "NETFLIX [MOBILE_REDACTED]",
		},
	}

	matched, unmatched := categorizer.Categorize(transactions)
	require.Len(t, matched, 1)
	assert.Empty(t, unmatched)
	assert.Equal(t, models.CategoryRecreationLeisure, matched[0].Category)
}

func TestRuleCategorizer_EmptyBatch(t *testing.T) {
	categorizer := NewRuleCategorizer(newTestMatcher(t), &logging.MockLogger{})
	matched, unmatched := categorizer.Categorize(nil)
	assert.Empty(t, matched)
	assert.Empty(t, unmatched)
}
