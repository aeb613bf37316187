// Package store loads the versioned reference data the pipeline depends on:
// the category keyword rules and the emission factor table. Both are YAML
// files resolved from standard locations, with compiled-in defaults when no
// file is present.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"gopkg.in/yaml.v3"
)

// ReferenceStore manages loading of rule and factor data files.
type ReferenceStore struct {
	RulesFile   string
	FactorsFile string
	logger      logging.Logger
}

// NewReferenceStore creates a store for the given data files. Empty file
// names fall back to the default file names, and a missing file falls back
// to the compiled-in data set.
func NewReferenceStore(rulesFile, factorsFile string, logger logging.Logger) *ReferenceStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ReferenceStore{
		RulesFile:   rulesFile,
		FactorsFile: factorsFile,
		logger:      logger,
	}
}

// findConfigFile looks for a configuration file in standard locations.
func (s *ReferenceStore) findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "carbonstmt", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules loads the keyword rule sets, ordered by category priority.
func (s *ReferenceStore) LoadRules() ([]models.CategoryRule, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = "rules.yaml"
	}

	filePath, err := s.findConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Rules file not found, using built-in rules",
				logging.Field{Key: "file", Value: filename})
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var config models.RulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
	}
	if len(config.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", filePath)
	}

	s.logger.Debug("Loaded keyword rules",
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "categories", Value: len(config.Rules)})
	return config.Rules, nil
}

// LoadFactors loads the emission factor table.
func (s *ReferenceStore) LoadFactors() ([]models.EmissionFactor, error) {
	filename := s.FactorsFile
	if filename == "" {
		filename = "factors.yaml"
	}

	filePath, err := s.findConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Factors file not found, using built-in factors",
				logging.Field{Key: "file", Value: filename})
			return DefaultFactors(), nil
		}
		return nil, fmt.Errorf("error resolving factors file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading factors file: %w", err)
	}

	var config models.FactorsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing factors file %s: %w", filePath, err)
	}
	if len(config.Factors) == 0 {
		return nil, fmt.Errorf("factors file %s contains no factors", filePath)
	}

	s.logger.Debug("Loaded emission factors",
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "entries", Value: len(config.Factors)})
	return config.Factors, nil
}
