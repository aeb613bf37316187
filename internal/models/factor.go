package models

// EmissionFactor is one row of the emission factor table: the [min,max]
// emission intensity for a spend category, expressed in kg CO2e per 1000
// currency units spent. Rows are reference data, loaded once and never
// mutated at runtime.
type EmissionFactor struct {
	Category  Category `yaml:"category" json:"category"`
	MinFactor float64  `yaml:"min_factor" json:"min_factor"`
	MaxFactor float64  `yaml:"max_factor" json:"max_factor"`
	Source    string   `yaml:"source,omitempty" json:"source,omitempty"`
	Notes     string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// FactorUnit documents the unit every factor is expressed in.
const FactorUnit = "kg-CO2e per 1000 currency units"

// CategoryRule is one category's keyword rule set. A transaction whose
// normalized description contains any keyword as a substring matches the
// category. Rule sets are versioned data: boundary calls (a travel-booking
// site is transport, not leisure) live in the data file, not in code.
type CategoryRule struct {
	Category Category `yaml:"category" json:"category"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// RulesConfig is the shape of the keyword rules YAML file.
type RulesConfig struct {
	Rules []CategoryRule `yaml:"rules"`
}

// FactorsConfig is the shape of the emission factors YAML file.
type FactorsConfig struct {
	Factors []EmissionFactor `yaml:"factors"`
}
