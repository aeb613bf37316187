// Package pipeerror defines the error taxonomy shared by the pipeline stages.
package pipeerror

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates broken reference data, such as a category
// without an emission factor entry or overlapping keyword rule sets. It is a
// data-integrity bug, not a runtime condition: the run aborts.
type ConfigurationError struct {
	Component string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: configuration error: %s", e.Component, e.Reason)
}

// MalformedTransactionError marks a single transaction that cannot be
// processed (negative amount, missing date). The transaction is excluded and
// reported as a warning; the batch continues.
type MalformedTransactionError struct {
	TransactionID string
	Reason        string
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("transaction %s is malformed: %s", e.TransactionID, e.Reason)
}

// ClassificationError wraps a failure of the external fallback classifier.
// It is recoverable: the engine retries, and after retries are exhausted the
// affected transactions get the miscellaneous category. It never reaches the
// caller of the pipeline.
type ClassificationError struct {
	Attempts int
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("fallback classification failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// StageError tags a hard pipeline failure with the stage that produced it and
// the number of transactions affected. It is the only error shape the
// pipeline surfaces to its caller; raw internal errors stay wrapped inside.
type StageError struct {
	Stage    string
	Affected int
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed (%d transactions affected): %v", e.Stage, e.Affected, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// AsStage extracts a StageError from err, if present.
func AsStage(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
