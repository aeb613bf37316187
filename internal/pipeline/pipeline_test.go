package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenspend/carbonstmt/internal/aggregator"
	"greenspend/carbonstmt/internal/categorizer"
	"greenspend/carbonstmt/internal/estimator"
	"greenspend/carbonstmt/internal/highvalue"
	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"
	"greenspend/carbonstmt/internal/pipeerror"
	"greenspend/carbonstmt/internal/redactor"
	"greenspend/carbonstmt/internal/rules"
	"greenspend/carbonstmt/internal/store"
)

// staticClassifier answers every request with a fixed category, or fails
// every call when broken is set.
type staticClassifier struct {
	category models.Category
	broken   bool
}

func (s *staticClassifier) Classify(_ context.Context, batch []categorizer.ClassificationRequest) ([]categorizer.ClassificationResult, error) {
	if s.broken {
		return nil, errors.New("service unavailable")
	}
	results := make([]categorizer.ClassificationResult, len(batch))
	for i, req := range batch {
		results[i] = categorizer.ClassificationResult{ID: req.ID, Category: s.category}
	}
	return results, nil
}

func (s *staticClassifier) Name() string { return "static" }

func newTestPipeline(t *testing.T, classifier categorizer.Classifier) *Pipeline {
	t.Helper()
	logger := &logging.MockLogger{}

	matcher, err := rules.NewMatcher(store.DefaultRules())
	require.NoError(t, err)
	est, err := estimator.NewEstimator(store.DefaultFactors(), logger)
	require.NoError(t, err)

	opts := categorizer.FallbackOptions{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		AttemptTimeout: time.Second,
		SubBatchSize:   40,
	}

	return New(
		redactor.NewRedactor(logger),
		highvalue.NewFilter(decimal.NewFromInt(50000), logger),
		categorizer.NewRuleCategorizer(matcher, logger),
		categorizer.NewFallbackClassifier(classifier, opts, logger),
		est,
		aggregator.NewAggregator(logger),
		logger,
	)
}

func debit(id, description string, amount int64, date time.Time) models.Transaction {
	return models.Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Direction:   models.DirectionDebit,
		Source:      models.SourceUnresolved,
	}
}

func TestRun_EndToEnd(t *testing.T) {
	p := newTestPipeline(t, &staticClassifier{category: models.CategoryHealthcare})
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []models.Transaction{
		debit("t1", "MAKEMYTRIP FLIGHT BOOKING", 10000, date),
		debit("t2", "NETFLIX SUBSCRIPTION", 500, date),
		debit("t3", "JEWELLERY PURCHASE", 85000, date),
		debit("t4", "SOME UNKNOWN MERCHANT", 1000, date),
		{
			ID: "t5", Date: date, Description: "SALARY CREDIT",
			Amount: decimal.NewFromInt(90000), Direction: models.DirectionCredit,
		},
	}

	result, err := p.Run(context.Background(), transactions)
	require.NoError(t, err)

	// t5 is a credit and t3 is high-value; three transactions were estimated.
	assert.Equal(t, 3, result.TransactionCount)

	require.Len(t, result.HighValueExcluded, 1)
	assert.True(t, result.HighValueExcluded[0].Amount.Equal(decimal.NewFromInt(85000)))
	assert.Equal(t, models.ReasonActivityBased, result.HighValueExcluded[0].Reason)

	// transport 10000 -> {200,400}, recreation 500 -> {1,4},
	// healthcare (fallback) 1000 -> {3,7}.
	assert.Equal(t, models.CarbonRange{Min: 204, Max: 411}, result.Total)

	require.NotEmpty(t, result.ByCategory)
	assert.Equal(t, models.CategoryTransport, result.ByCategory[0].Category)
	assert.Equal(t, models.CarbonRange{Min: 200, Max: 400}, result.ByCategory[0].Carbon)

	assert.Equal(t, 2, result.Efficiency.RuleCount)
	assert.Equal(t, 1, result.Efficiency.FallbackCount)
	assert.Empty(t, result.Warnings)
}

// With the classifier down, unresolved transactions degrade to miscellaneous
// and the run still completes.
func TestRun_ClassifierDownDegrades(t *testing.T) {
	p := newTestPipeline(t, &staticClassifier{broken: true})
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	result, err := p.Run(context.Background(), []models.Transaction{
		debit("t1", "UNKNOWN MERCHANT A", 100, date),
		debit("t2", "UNKNOWN MERCHANT B", 200, date),
		debit("t3", "SWIGGY ORDER", 300, date),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TransactionCount)
	assert.Len(t, result.Warnings, 2)
	assert.Equal(t, 1, result.Efficiency.RuleCount)
	assert.Equal(t, 2, result.Efficiency.FallbackCount)

	var misc *models.CategoryTotal
	for i := range result.ByCategory {
		if result.ByCategory[i].Category == models.CategoryMiscellaneous {
			misc = &result.ByCategory[i]
		}
	}
	require.NotNil(t, misc)
	assert.Equal(t, 2, misc.Count)
}

// Malformed transactions are excluded with a warning; the batch continues.
func TestRun_MalformedTransactionsExcluded(t *testing.T) {
	p := newTestPipeline(t, &staticClassifier{category: models.CategoryMiscellaneous})
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	negative := debit("bad-amount", "SWIGGY ORDER", 0, date)
	negative.Amount = decimal.NewFromInt(-500)
	noDate := debit("bad-date", "UBER RIDE", 100, time.Time{})

	result, err := p.Run(context.Background(), []models.Transaction{
		debit("good", "NETFLIX SUBSCRIPTION", 500, date),
		negative,
		noDate,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TransactionCount)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "bad-amount")
	assert.Contains(t, result.Warnings[1], "bad-date")
}

// The same input always produces the same aggregate: no hidden state
// survives between runs.
func TestRun_Deterministic(t *testing.T) {
	p := newTestPipeline(t, &staticClassifier{category: models.CategoryHealthcare})
	date := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)

	transactions := []models.Transaction{
		debit("t1", "MAKEMYTRIP BOOKING", 10000, date),
		debit("t2", "MYSTERY SHOP", 700, date),
	}

	first, err := p.Run(context.Background(), transactions)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), transactions)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_CancelledContext(t *testing.T) {
	p := newTestPipeline(t, &staticClassifier{category: models.CategoryHealthcare})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, []models.Transaction{
		debit("t1", "SWIGGY ORDER", 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.Error(t, err)

	stageErr, ok := pipeerror.AsStage(err)
	require.True(t, ok)
	assert.NotEmpty(t, stageErr.Stage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_EmptyBatch(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.TransactionCount)
	assert.True(t, result.Total.IsZero())
}

func TestRunDetailed_ReturnsEstimatedTransactions(t *testing.T) {
	p := newTestPipeline(t, nil)
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	_, transactions, err := p.RunDetailed(context.Background(), []models.Transaction{
		debit("t1", "NETFLIX SUBSCRIPTION", 500, date),
	})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.CategoryRecreationLeisure, transactions[0].Category)
	require.NotNil(t, transactions[0].Carbon)
	assert.Equal(t, models.CarbonRange{Min: 1, Max: 4}, *transactions[0].Carbon)
}
