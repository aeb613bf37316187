// Package validate handles reference data validation commands
package validate

import (
	"errors"
	"fmt"

	"greenspend/carbonstmt/cmd/root"
	"greenspend/carbonstmt/internal/estimator"
	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/pipeerror"
	"greenspend/carbonstmt/internal/rules"
	"greenspend/carbonstmt/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the keyword rules and emission factor files",
	Long: `Validate checks the configured rules and factors files for problems
that would stop the pipeline: keywords shared between categories, missing
factor rows, and inverted factor ranges.`,
	RunE: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	referenceStore := store.NewReferenceStore(root.Cfg.Data.RulesFile, root.Cfg.Data.FactorsFile, logger)

	ruleSets, err := referenceStore.LoadRules()
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	matcher, err := rules.NewMatcher(ruleSets)
	if err != nil {
		return reportConfigError("rules", err)
	}
	for category, count := range matcher.KeywordCount() {
		root.Log.Debugf("Category %s has %d keywords", category, count)
	}
	root.Log.Infof("Rules OK: %d categories", len(ruleSets))

	factors, err := referenceStore.LoadFactors()
	if err != nil {
		return fmt.Errorf("failed to load factors: %w", err)
	}
	if _, err := estimator.NewEstimator(factors, logger); err != nil {
		return reportConfigError("factors", err)
	}
	root.Log.Infof("Factors OK: %d categories", len(factors))
	return nil
}

func reportConfigError(file string, err error) error {
	var confErr *pipeerror.ConfigurationError
	if errors.As(err, &confErr) {
		return fmt.Errorf("%s file is invalid: %s", file, confErr.Reason)
	}
	return err
}
