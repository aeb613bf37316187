// Package pipeline orchestrates the carbon estimation run: a fixed, linear
// sequence of stages that takes redaction-ready transactions to an aggregate
// result. This is not a general graph executor; the only branch is the
// high-value split, and stages always run in the same order.
package pipeline

import (
	"context"
	"fmt"

	"greenspend/carbonstmt/internal/aggregator"
	"greenspend/carbonstmt/internal/categorizer"
	"greenspend/carbonstmt/internal/estimator"
	"greenspend/carbonstmt/internal/highvalue"
	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
	"greenspend/carbonstmt/internal/pipeerror"
	"greenspend/carbonstmt/internal/redactor"
)

// Stage names used to tag failures.
const (
	StageRedact    = "redact"
	StageHighValue = "high-value-filter"
	StageRule      = "rule-categorize"
	StageFallback  = "fallback-categorize"
	StageEstimate  = "carbon-estimate"
	StageAggregate = "aggregate"
)

// state is the value threaded through the stages. Each stage receives the
// previous state and returns a new one; nothing is shared or mutated across
// stage boundaries, so a hard failure can simply drop the state without
// leaving a half-updated result behind.
type state struct {
	working   []models.Transaction
	highValue []models.HighValueTransaction
	warnings  []string
	stats     models.ProcessingStats
}

// Pipeline wires the stages together.
type Pipeline struct {
	redactor   *redactor.Redactor
	filter     *highvalue.Filter
	rules      *categorizer.RuleCategorizer
	fallback   *categorizer.FallbackClassifier
	estimator  *estimator.Estimator
	aggregator *aggregator.Aggregator
	logger     logging.Logger
}

// New creates a Pipeline from its stage implementations.
func New(
	red *redactor.Redactor,
	filter *highvalue.Filter,
	ruleCat *categorizer.RuleCategorizer,
	fallback *categorizer.FallbackClassifier,
	est *estimator.Estimator,
	agg *aggregator.Aggregator,
	logger logging.Logger,
) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{
		redactor:   red,
		filter:     filter,
		rules:      ruleCat,
		fallback:   fallback,
		estimator:  est,
		aggregator: agg,
		logger:     logger,
	}
}

// Run executes the full pipeline over one transaction batch. On a hard stage
// failure the partial results are discarded and a stage-tagged error is
// returned; the caller never sees a half-estimated report. Per-transaction
// problems (malformed records, classifier degradation) surface as warnings
// on the result instead.
func (p *Pipeline) Run(ctx context.Context, transactions []models.Transaction) (models.AggregateResult, error) {
	result, _, err := p.RunDetailed(ctx, transactions)
	return result, err
}

// RunDetailed is Run plus the estimated per-transaction records, for callers
// that export transaction-level output.
func (p *Pipeline) RunDetailed(ctx context.Context, transactions []models.Transaction) (models.AggregateResult, []models.Transaction, error) {
	st := state{working: transactions}
	st.stats.Extracted = len(transactions)

	type stageFunc struct {
		name string
		run  func(context.Context, state) (state, error)
	}
	stages := []stageFunc{
		{StageRedact, p.runRedact},
		{StageHighValue, p.runHighValue},
		{StageRule, p.runRuleCategorize},
		{StageFallback, p.runFallback},
		{StageEstimate, p.runEstimate},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return models.AggregateResult{}, nil, &pipeerror.StageError{
				Stage: stage.name, Affected: len(st.working), Err: err,
			}
		}

		next, err := stage.run(ctx, st)
		if err != nil {
			p.logger.WithError(err).Error("Pipeline stage failed",
				logging.Field{Key: "stage", Value: stage.name},
				logging.Field{Key: "affected", Value: len(st.working)})
			return models.AggregateResult{}, nil, &pipeerror.StageError{
				Stage: stage.name, Affected: len(st.working), Err: err,
			}
		}
		st = next
	}

	result := p.aggregator.Aggregate(st.working, st.highValue, st.warnings)
	st.stats.Warnings = len(st.warnings)
	st.stats.LogSummary(p.logger)
	return result, st.working, nil
}

// runRedact validates the raw records, then redacts PII and drops credits.
// Malformed transactions (negative amount, missing date) are excluded with a
// warning each; they never abort the batch.
func (p *Pipeline) runRedact(_ context.Context, st state) (state, error) {
	valid := make([]models.Transaction, 0, len(st.working))
	for _, tx := range st.working {
		if err := validate(tx); err != nil {
			st.warnings = append(st.warnings, err.Error())
			st.stats.Malformed++
			continue
		}
		valid = append(valid, tx)
	}

	outcome := p.redactor.Redact(valid)
	st.working = outcome.Transactions
	st.stats.PIIRedacted = outcome.PIIRedacted
	st.stats.CreditsFiltered = outcome.CreditsFiltered
	return st, nil
}

func (p *Pipeline) runHighValue(_ context.Context, st state) (state, error) {
	regular, highValue := p.filter.Split(st.working)
	st.working = regular
	st.highValue = highValue
	st.stats.HighValue = len(highValue)
	return st, nil
}

// runRuleCategorize partitions the working set; the unresolved remainder is
// stashed at the tail of working so the fallback stage can find it without a
// second partition.
func (p *Pipeline) runRuleCategorize(_ context.Context, st state) (state, error) {
	matched, unmatched := p.rules.Categorize(st.working)
	st.working = append(matched, unmatched...)
	st.stats.RuleBased = len(matched)
	return st, nil
}

func (p *Pipeline) runFallback(ctx context.Context, st state) (state, error) {
	classified := make([]models.Transaction, 0, len(st.working))
	var unresolved []models.Transaction
	for _, tx := range st.working {
		if tx.IsClassified() {
			classified = append(classified, tx)
			continue
		}
		unresolved = append(unresolved, tx)
	}

	outcome, err := p.fallback.Resolve(ctx, unresolved)
	if err != nil {
		return st, err
	}

	st.working = append(classified, outcome.Classified...)
	st.warnings = append(st.warnings, outcome.Warnings...)
	st.stats.FallbackBased = len(outcome.Classified)
	return st, nil
}

func (p *Pipeline) runEstimate(_ context.Context, st state) (state, error) {
	estimated, err := p.estimator.EstimateBatch(st.working)
	if err != nil {
		return st, err
	}
	st.working = estimated
	return st, nil
}

// validate enforces the minimal record invariants. The extractor already
// rejects most malformed lines; this guards transactions arriving through
// other inputs (CSV import, API callers).
func validate(tx models.Transaction) error {
	if tx.Date.IsZero() {
		return &pipeerror.MalformedTransactionError{
			TransactionID: tx.ID, Reason: "missing date",
		}
	}
	if tx.Amount.IsNegative() {
		return &pipeerror.MalformedTransactionError{
			TransactionID: tx.ID,
			Reason:        fmt.Sprintf("negative amount %s", tx.Amount),
		}
	}
	return nil
}
