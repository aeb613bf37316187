package categorizer

import (
	"context"

	"greenspend/carbonstmt/internal/models"
)

// ClassificationRequest is one transaction presented to the external
// classifier. Only the stable id and the redacted description cross the
// boundary; amounts, dates and raw text never leave the process.
type ClassificationRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ClassificationResult is the classifier's answer for one request.
// Category must be a member of the closed enumeration; anything else is
// treated as a failure for that transaction.
type ClassificationResult struct {
	ID       string          `json:"id"`
	Category models.Category `json:"category"`
}

// Classifier is the boundary to the external classification service.
// Implementations interact with a remote model (e.g. Google Gemini); tests
// substitute a mock. A call classifies a whole batch at once to bound the
// number of external requests.
//
// A result slice may be shorter than the request slice: any id not echoed
// back is a failure for that transaction only. An error return means the
// whole batch failed and may be retried.
type Classifier interface {
	Classify(ctx context.Context, batch []ClassificationRequest) ([]ClassificationResult, error)

	// Name identifies the classifier implementation for logging.
	Name() string
}
