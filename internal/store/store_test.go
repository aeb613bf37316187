package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadRules_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	writeFile(t, file, `rules:
  - category: transport
    keywords: ["uber", "fuel"]
  - category: food_and_groceries
    keywords: ["swiggy"]
`)

	s := NewReferenceStore(file, "", &logging.MockLogger{})
	ruleSets, err := s.LoadRules()
	require.NoError(t, err)
	require.Len(t, ruleSets, 2)
	assert.Equal(t, models.CategoryTransport, ruleSets[0].Category)
	assert.Equal(t, []string{"uber", "fuel"}, ruleSets[0].Keywords)
}

func TestLoadRules_MissingFileUsesDefaults(t *testing.T) {
	s := NewReferenceStore(filepath.Join(t.TempDir(), "nope.yaml"), "", &logging.MockLogger{})
	ruleSets, err := s.LoadRules()
	require.NoError(t, err)
	assert.Len(t, ruleSets, len(models.AllCategories))
}

func TestLoadRules_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	writeFile(t, file, "rules: [not: valid: yaml")

	s := NewReferenceStore(file, "", &logging.MockLogger{})
	_, err := s.LoadRules()
	assert.Error(t, err)
}

func TestLoadRules_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	writeFile(t, file, "rules: []\n")

	s := NewReferenceStore(file, "", &logging.MockLogger{})
	_, err := s.LoadRules()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no rules")
}

func TestLoadFactors_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "factors.yaml")
	writeFile(t, file, `factors:
  - category: transport
    min_factor: 20
    max_factor: 40
    source: "test"
`)

	s := NewReferenceStore("", file, &logging.MockLogger{})
	factors, err := s.LoadFactors()
	require.NoError(t, err)
	require.Len(t, factors, 1)
	assert.Equal(t, models.CategoryTransport, factors[0].Category)
	assert.Equal(t, 20.0, factors[0].MinFactor)
	assert.Equal(t, 40.0, factors[0].MaxFactor)
}

func TestLoadFactors_MissingFileUsesDefaults(t *testing.T) {
	s := NewReferenceStore("", filepath.Join(t.TempDir(), "nope.yaml"), &logging.MockLogger{})
	factors, err := s.LoadFactors()
	require.NoError(t, err)
	assert.Len(t, factors, len(models.AllCategories))
}

// The compiled-in defaults must satisfy the same integrity invariants the
// loaded files do: full category coverage, valid ranges, no shared keywords.
func TestDefaultsCoverEveryCategory(t *testing.T) {
	ruleCategories := make(map[models.Category]bool)
	seenKeywords := make(map[string]models.Category)
	for _, ruleSet := range DefaultRules() {
		assert.True(t, ruleSet.Category.IsValid())
		ruleCategories[ruleSet.Category] = true
		for _, keyword := range ruleSet.Keywords {
			owner, dup := seenKeywords[keyword]
			assert.False(t, dup, "keyword %q in both %s and %s", keyword, owner, ruleSet.Category)
			seenKeywords[keyword] = ruleSet.Category
		}
	}

	factorCategories := make(map[models.Category]bool)
	for _, factor := range DefaultFactors() {
		assert.True(t, factor.Category.IsValid())
		assert.GreaterOrEqual(t, factor.MinFactor, 0.0)
		assert.GreaterOrEqual(t, factor.MaxFactor, factor.MinFactor)
		factorCategories[factor.Category] = true
	}

	for _, category := range models.AllCategories {
		assert.True(t, ruleCategories[category], "no rules for %s", category)
		assert.True(t, factorCategories[category], "no factor for %s", category)
	}
}
