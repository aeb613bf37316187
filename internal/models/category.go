// Package models provides the data structures used throughout the application.
package models

import "strings"

// Category identifies one of the fixed spend categories used for emission
// estimation. The set is closed: every category maps 1:1 to an emission
// factor entry and the fallback classifier may only answer with one of them.
type Category string

// The official spend categories.
const (
	CategoryFoodAndGroceries   Category = "food_and_groceries"
	CategoryHousingUtilities   Category = "housing_and_utilities"
	CategoryTransport          Category = "transport"
	CategoryClothing           Category = "clothing_and_footwear"
	CategoryHouseholdGoods     Category = "household_goods_and_appliances"
	CategoryHealthcare         Category = "healthcare_and_personal_care"
	CategoryEducationComms     Category = "education_and_communication"
	CategoryRecreationLeisure  Category = "recreation_and_leisure"
	CategoryFinancialInsurance Category = "financial_services_and_insurance"
	CategoryMiscellaneous      Category = "miscellaneous"
)

// AllCategories lists the official categories in priority order. The rule
// matcher tests keyword sets in this order, so earlier categories win when a
// description could plausibly match more than one. Transport sits before
// recreation deliberately: travel-booking merchants are transport, not leisure.
var AllCategories = []Category{
	CategoryFoodAndGroceries,
	CategoryHousingUtilities,
	CategoryTransport,
	CategoryClothing,
	CategoryHouseholdGoods,
	CategoryHealthcare,
	CategoryEducationComms,
	CategoryRecreationLeisure,
	CategoryFinancialInsurance,
	CategoryMiscellaneous,
}

// displayNames maps categories to human-readable names for reports.
var displayNames = map[Category]string{
	CategoryFoodAndGroceries:   "Food & Groceries",
	CategoryHousingUtilities:   "Housing & Utilities",
	CategoryTransport:          "Transport",
	CategoryClothing:           "Clothing & Footwear",
	CategoryHouseholdGoods:     "Household Goods & Appliances",
	CategoryHealthcare:         "Healthcare & Personal Care",
	CategoryEducationComms:     "Education & Communication",
	CategoryRecreationLeisure:  "Recreation & Leisure",
	CategoryFinancialInsurance: "Financial Services & Insurance",
	CategoryMiscellaneous:      "Miscellaneous",
}

// aliases maps common classifier answers and legacy names onto official
// categories. The fallback classifier is instructed to use exact names but
// models drift; a looser answer that still clearly identifies a category is
// accepted rather than treated as a failure.
var aliases = map[string]Category{
	"food":                     CategoryFoodAndGroceries,
	"groceries":                CategoryFoodAndGroceries,
	"food_delivery":            CategoryFoodAndGroceries,
	"food_groceries":           CategoryFoodAndGroceries,
	"utilities":                CategoryHousingUtilities,
	"housing":                  CategoryHousingUtilities,
	"housing_utilities":        CategoryHousingUtilities,
	"housing_rent":             CategoryHousingUtilities,
	"fuel":                     CategoryTransport,
	"transport_fuel":           CategoryTransport,
	"transport_public":         CategoryTransport,
	"transport_ride_sharing":   CategoryTransport,
	"clothing":                 CategoryClothing,
	"footwear":                 CategoryClothing,
	"shopping_clothing":        CategoryClothing,
	"electronics":              CategoryHouseholdGoods,
	"appliances":               CategoryHouseholdGoods,
	"shopping_online":          CategoryHouseholdGoods,
	"shopping_electronics":     CategoryHouseholdGoods,
	"healthcare":               CategoryHealthcare,
	"medical":                  CategoryHealthcare,
	"personal_care":            CategoryHealthcare,
	"education":                CategoryEducationComms,
	"communication":            CategoryEducationComms,
	"entertainment":            CategoryRecreationLeisure,
	"travel":                   CategoryRecreationLeisure,
	"recreation":               CategoryRecreationLeisure,
	"recreation_entertainment": CategoryRecreationLeisure,
	"recreation_travel":        CategoryRecreationLeisure,
	"financial":                CategoryFinancialInsurance,
	"insurance":                CategoryFinancialInsurance,
	"financial_services":       CategoryFinancialInsurance,
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// DisplayName returns the human-readable name for the category.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return strings.Title(strings.ReplaceAll(string(c), "_", " "))
}

// IsValid reports whether the category is a member of the official set.
func (c Category) IsValid() bool {
	_, ok := displayNames[c]
	return ok
}

// ParseCategory resolves an arbitrary category string to an official category.
// It accepts exact identifiers, known aliases, and minor formatting variants
// (spaces or dashes instead of underscores). The second return value reports
// whether the input could be resolved; callers decide whether an unresolvable
// answer is a failure or falls through to miscellaneous.
func ParseCategory(s string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	if c := Category(normalized); c.IsValid() {
		return c, true
	}
	if c, ok := aliases[normalized]; ok {
		return c, true
	}
	return CategoryMiscellaneous, false
}
