package categorizer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
	"greenspend/carbonstmt/internal/pipeerror"
)

// FallbackOptions tunes the retry and batching behavior of the fallback
// classification engine.
type FallbackOptions struct {
	// MaxAttempts is the number of tries per sub-batch, including the first.
	MaxAttempts int
	// InitialBackoff is the delay before the second attempt; it doubles on
	// every further attempt.
	InitialBackoff time.Duration
	// AttemptTimeout bounds each individual classifier call.
	AttemptTimeout time.Duration
	// SubBatchSize is the maximum number of transactions per classifier
	// call. Larger batches are split and the sub-batches run concurrently.
	SubBatchSize int
}

// DefaultFallbackOptions returns the production defaults.
func DefaultFallbackOptions() FallbackOptions {
	return FallbackOptions{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		AttemptTimeout: 30 * time.Second,
		SubBatchSize:   40,
	}
}

// FallbackOutcome is the result of resolving a batch of rule-unresolved
// transactions. Every input transaction appears exactly once in Classified:
// either with the category the service returned, or with miscellaneous when
// the service could not resolve it. Warnings carries one entry per
// transaction that degraded to miscellaneous.
type FallbackOutcome struct {
	Classified []models.Transaction
	Warnings   []string
}

// FallbackClassifier resolves rule-unresolved transactions through an
// external classifier with bounded retries. It never fails a run: terminal
// classifier failure degrades the affected transactions to miscellaneous.
type FallbackClassifier struct {
	classifier Classifier
	opts       FallbackOptions
	logger     logging.Logger
}

// NewFallbackClassifier creates a fallback engine around the given
// classifier. A nil classifier is allowed and degrades every transaction to
// miscellaneous, so the pipeline works without a configured service.
func NewFallbackClassifier(classifier Classifier, opts FallbackOptions, logger logging.Logger) *FallbackClassifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.SubBatchSize < 1 {
		opts.SubBatchSize = DefaultFallbackOptions().SubBatchSize
	}
	return &FallbackClassifier{
		classifier: classifier,
		opts:       opts,
		logger:     logger,
	}
}

// Resolve classifies the batch. The only error it returns is context
// cancellation; service failures are absorbed per transaction.
func (f *FallbackClassifier) Resolve(ctx context.Context, unresolved []models.Transaction) (FallbackOutcome, error) {
	if len(unresolved) == 0 {
		return FallbackOutcome{}, nil
	}

	resolved := make(map[string]models.Category, len(unresolved))

	if f.classifier == nil {
		f.logger.Warn("No fallback classifier configured, assigning miscellaneous",
			logging.Field{Key: "count", Value: len(unresolved)})
	} else {
		var err error
		resolved, err = f.classifyAll(ctx, unresolved)
		if err != nil {
			return FallbackOutcome{}, err
		}
	}

	outcome := FallbackOutcome{
		Classified: make([]models.Transaction, 0, len(unresolved)),
	}
	for _, tx := range unresolved {
		category, ok := resolved[tx.ID]
		if !ok {
			category = models.CategoryMiscellaneous
			outcome.Warnings = append(outcome.Warnings,
				fmt.Sprintf("transaction %s: fallback classification failed, assigned miscellaneous", tx.ID))
		}
		outcome.Classified = append(outcome.Classified, tx.WithCategory(category, models.SourceFallback))
	}

	f.logger.Info("Fallback classification complete",
		logging.Field{Key: "total", Value: len(unresolved)},
		logging.Field{Key: "resolved", Value: len(resolved)},
		logging.Field{Key: "degraded", Value: len(outcome.Warnings)})
	return outcome, nil
}

// classifyAll splits the batch into sub-batches, classifies them
// concurrently, and merges the answers by transaction id. Merging by id
// rather than position matters: sub-batches finish out of submission order.
func (f *FallbackClassifier) classifyAll(ctx context.Context, unresolved []models.Transaction) (map[string]models.Category, error) {
	batches := f.subBatches(unresolved)

	type batchResult struct {
		results []ClassificationResult
	}
	resultCh := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for _, batch := range batches {
		wg.Add(1)
		go func(batch []ClassificationRequest) {
			defer wg.Done()
			results, err := f.classifyWithRetry(ctx, batch)
			if err != nil {
				f.logger.WithError(err).Warn("Sub-batch classification exhausted retries",
					logging.Field{Key: "batch_size", Value: len(batch)})
				return
			}
			resultCh <- batchResult{results: results}
		}(batch)
	}
	wg.Wait()
	close(resultCh)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	ids := make(map[string]bool, len(unresolved))
	for _, tx := range unresolved {
		ids[tx.ID] = true
	}

	resolved := make(map[string]models.Category, len(unresolved))
	for br := range resultCh {
		for _, result := range br.results {
			if !ids[result.ID] {
				f.logger.Warn("Classifier returned unknown transaction id",
					logging.Field{Key: "id", Value: result.ID})
				continue
			}
			category, ok := models.ParseCategory(result.Category.String())
			if !ok {
				// An answer outside the closed vocabulary counts as a
				// failure for that transaction, same as a missing id.
				f.logger.Warn("Classifier returned unrecognized category",
					logging.Field{Key: "id", Value: result.ID},
					logging.Field{Key: "category", Value: result.Category})
				continue
			}
			resolved[result.ID] = category
		}
	}
	return resolved, nil
}

// classifyWithRetry runs one sub-batch with exponential backoff.
func (f *FallbackClassifier) classifyWithRetry(ctx context.Context, batch []ClassificationRequest) ([]ClassificationResult, error) {
	backoff := f.opts.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= f.opts.MaxAttempts; attempt++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if f.opts.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, f.opts.AttemptTimeout)
		}
		results, err := f.classifier.Classify(attemptCtx, batch)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return results, nil
		}
		lastErr = err

		f.logger.WithError(err).Debug("Classifier attempt failed",
			logging.Field{Key: "classifier", Value: f.classifier.Name()},
			logging.Field{Key: "attempt", Value: attempt},
			logging.Field{Key: "max_attempts", Value: f.opts.MaxAttempts})

		if attempt == f.opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, &pipeerror.ClassificationError{
		Attempts: f.opts.MaxAttempts,
		Err:      lastErr,
	}
}

// subBatches converts transactions to classification requests and splits
// them by SubBatchSize.
func (f *FallbackClassifier) subBatches(unresolved []models.Transaction) [][]ClassificationRequest {
	requests := make([]ClassificationRequest, len(unresolved))
	for i, tx := range unresolved {
		requests[i] = ClassificationRequest{
			ID:          tx.ID,
			Description: tx.EffectiveDescription(),
		}
	}

	var batches [][]ClassificationRequest
	for start := 0; start < len(requests); start += f.opts.SubBatchSize {
		end := start + f.opts.SubBatchSize
		if end > len(requests) {
			end = len(requests)
		}
		batches = append(batches, requests[start:end])
	}
	return batches
}
