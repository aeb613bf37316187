// Package container provides dependency injection for the carbonstmt
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"greenspend/carbonstmt/internal/aggregator"
	"greenspend/carbonstmt/internal/categorizer"
	"greenspend/carbonstmt/internal/config"
	"greenspend/carbonstmt/internal/estimator"
	"greenspend/carbonstmt/internal/extractor"
	"greenspend/carbonstmt/internal/highvalue"
	"greenspend/carbonstmt/internal/insights"
	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/pdfparser"
	"greenspend/carbonstmt/internal/pipeline"
	"greenspend/carbonstmt/internal/redactor"
	"greenspend/carbonstmt/internal/report"
	"greenspend/carbonstmt/internal/rules"
	"greenspend/carbonstmt/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them. Container is immutable after creation - all fields are
// private and can only be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     *store.ReferenceStore
	matcher   *rules.Matcher
	estimator *estimator.Estimator
	pipeline  *pipeline.Pipeline
	extractor *extractor.Extractor
	pdf       pdfparser.TextExtractor
	report    *report.Generator
	insights  insights.Generator

	classifier  *categorizer.GeminiClassifier
	insightsGen *insights.GeminiGenerator
}

// NewContainer creates and wires all application dependencies.
// The context is used for AI client initialization only.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	referenceStore := store.NewReferenceStore(cfg.Data.RulesFile, cfg.Data.FactorsFile, logger)

	ruleSets, err := referenceStore.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("loading category rules: %w", err)
	}
	matcher, err := rules.NewMatcher(ruleSets)
	if err != nil {
		return nil, fmt.Errorf("building keyword matcher: %w", err)
	}

	factors, err := referenceStore.LoadFactors()
	if err != nil {
		return nil, fmt.Errorf("loading emission factors: %w", err)
	}
	est, err := estimator.NewEstimator(factors, logger)
	if err != nil {
		return nil, fmt.Errorf("building estimator: %w", err)
	}

	// Create AI classifier (if enabled)
	var gemini *categorizer.GeminiClassifier
	var classifier categorizer.Classifier
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err = categorizer.NewGeminiClassifier(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("creating AI classifier: %w", err)
		}
		classifier = gemini
		logger.Info("AI fallback classification enabled",
			logging.Field{Key: "model", Value: cfg.AI.Model})
	} else {
		logger.Info("AI fallback classification disabled")
	}

	fallbackOpts := categorizer.DefaultFallbackOptions()
	if cfg.AI.MaxAttempts > 0 {
		fallbackOpts.MaxAttempts = cfg.AI.MaxAttempts
	}
	if cfg.AI.TimeoutSeconds > 0 {
		fallbackOpts.AttemptTimeout = time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	}
	if cfg.AI.BatchSize > 0 {
		fallbackOpts.SubBatchSize = cfg.AI.BatchSize
	}

	pipe := pipeline.New(
		redactor.NewRedactor(logger),
		highvalue.NewFilter(decimal.NewFromInt(cfg.Pipeline.HighValueThreshold), logger),
		categorizer.NewRuleCategorizer(matcher, logger),
		categorizer.NewFallbackClassifier(classifier, fallbackOpts, logger),
		est,
		aggregator.NewAggregator(logger),
		logger,
	)

	var insightGen *insights.GeminiGenerator
	if cfg.Insights.Enabled && cfg.AI.APIKey != "" {
		insightGen, err = insights.NewGeminiGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("creating insights generator: %w", err)
		}
	}

	logger.Info("Container initialized successfully",
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled},
		logging.Field{Key: "high_value_threshold", Value: cfg.Pipeline.HighValueThreshold})

	c := &Container{
		logger:      logger,
		config:      cfg,
		store:       referenceStore,
		matcher:     matcher,
		estimator:   est,
		pipeline:    pipe,
		extractor:   extractor.NewExtractor(logger),
		pdf:         pdfparser.NewPDFExtractor(logger),
		report:      report.NewGenerator(logger),
		classifier:  gemini,
		insightsGen: insightGen,
	}
	if insightGen != nil {
		c.insights = insightGen
	}
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's reference data store.
func (c *Container) GetStore() *store.ReferenceStore {
	return c.store
}

// GetMatcher returns the container's keyword matcher.
func (c *Container) GetMatcher() *rules.Matcher {
	return c.matcher
}

// GetEstimator returns the container's carbon estimator.
func (c *Container) GetEstimator() *estimator.Estimator {
	return c.estimator
}

// GetPipeline returns the fully wired estimation pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetExtractor returns the statement text extractor.
func (c *Container) GetExtractor() *extractor.Extractor {
	return c.extractor
}

// GetPDFExtractor returns the PDF text extractor.
func (c *Container) GetPDFExtractor() pdfparser.TextExtractor {
	return c.pdf
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.report
}

// GetInsightsGenerator returns the insights generator.
// Returns nil when insights are not enabled.
func (c *Container) GetInsightsGenerator() insights.Generator {
	return c.insights
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	if c.classifier != nil {
		if err := c.classifier.Close(); err != nil {
			return fmt.Errorf("closing AI classifier: %w", err)
		}
	}
	if c.insightsGen != nil {
		if err := c.insightsGen.Close(); err != nil {
			return fmt.Errorf("closing insights generator: %w", err)
		}
	}
	c.logger.Info("Container closed")
	return nil
}
