package pipeerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Component: "rules", Reason: "keyword shared"}
	assert.Equal(t, "rules: configuration error: keyword shared", err.Error())
	assert.True(t, IsConfiguration(err))
	assert.True(t, IsConfiguration(fmt.Errorf("loading: %w", err)))
	assert.False(t, IsConfiguration(errors.New("other")))
}

func TestMalformedTransactionError(t *testing.T) {
	err := &MalformedTransactionError{TransactionID: "t7", Reason: "missing date"}
	assert.Equal(t, "transaction t7 is malformed: missing date", err.Error())
}

func TestClassificationErrorUnwrap(t *testing.T) {
	cause := errors.New("service unavailable")
	err := &ClassificationError{Attempts: 3, Err: cause}

	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.ErrorIs(t, err, cause)
}

func TestStageError(t *testing.T) {
	cause := &ConfigurationError{Component: "estimator", Reason: "missing factor"}
	err := &StageError{Stage: "carbon-estimate", Affected: 12, Err: cause}

	assert.Contains(t, err.Error(), "carbon-estimate")
	assert.Contains(t, err.Error(), "12 transactions")
	assert.True(t, IsConfiguration(err))

	stageErr, ok := AsStage(fmt.Errorf("run failed: %w", err))
	require.True(t, ok)
	assert.Equal(t, "carbon-estimate", stageErr.Stage)

	_, ok = AsStage(errors.New("plain"))
	assert.False(t, ok)
}
