package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Category
		ok    bool
	}{
		{"canonical id", "transport", CategoryTransport, true},
		{"uppercase", "TRANSPORT", CategoryTransport, true},
		{"surrounding whitespace", "  food_and_groceries  ", CategoryFoodAndGroceries, true},
		{"spaces normalized", "recreation and leisure", CategoryRecreationLeisure, true},
		{"dashes normalized", "housing-and-utilities", CategoryHousingUtilities, true},
		{"alias", "entertainment", CategoryRecreationLeisure, true},
		{"alias with drift", "transport_ride_sharing", CategoryTransport, true},
		{"unknown falls to miscellaneous", "quantum_flux", CategoryMiscellaneous, false},
		{"empty", "", CategoryMiscellaneous, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCategory(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "Food & Groceries", CategoryFoodAndGroceries.DisplayName())
	assert.Equal(t, "Transport", CategoryTransport.DisplayName())
	// Unknown categories fall back to their raw identifier.
	assert.Equal(t, "mystery", Category("mystery").DisplayName())
}

func TestAllCategoriesHaveDisplayNames(t *testing.T) {
	for _, category := range AllCategories {
		assert.True(t, category.IsValid(), "category %s should be valid", category)
		assert.NotEmpty(t, category.DisplayName())
	}
}

func TestCarbonRangeAdd(t *testing.T) {
	sum := CarbonRange{Min: 10, Max: 20}.Add(CarbonRange{Min: 5, Max: 15})
	assert.Equal(t, CarbonRange{Min: 15, Max: 35}, sum)
}

func TestCarbonRangeIsZero(t *testing.T) {
	assert.True(t, CarbonRange{}.IsZero())
	assert.False(t, CarbonRange{Max: 0.1}.IsZero())
}

func TestTransactionEffectiveDescription(t *testing.T) {
	tx := Transaction{Description: "raw 9876543210", RedactedDescription: "raw [MOBILE_REDACTED]"}
	assert.Equal(t, "raw [MOBILE_REDACTED]", tx.EffectiveDescription())

	tx.RedactedDescription = ""
	assert.Equal(t, "raw 9876543210", tx.EffectiveDescription())
}

func TestTransactionWithCategoryReturnsCopy(t *testing.T) {
	original := Transaction{ID: "t1", Source: SourceUnresolved}
	classified := original.WithCategory(CategoryTransport, SourceRule)

	assert.Equal(t, CategoryTransport, classified.Category)
	assert.Equal(t, SourceRule, classified.Source)
	assert.True(t, classified.IsClassified())

	// The original is untouched.
	assert.Empty(t, original.Category)
	assert.False(t, original.IsClassified())
}

func TestCategorizationEfficiencyRatio(t *testing.T) {
	assert.Equal(t, 0.0, CategorizationEfficiency{}.Ratio())
	assert.Equal(t, 0.75, CategorizationEfficiency{RuleCount: 3, FallbackCount: 1}.Ratio())
}
