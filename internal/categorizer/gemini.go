package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClassifier implements Classifier using the Google Gemini API.
type GeminiClassifier struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// jsonArrayPattern extracts the first JSON array from a model response that
// may wrap it in prose or markdown fences.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// NewGeminiClassifier creates a classifier backed by the given Gemini model.
func NewGeminiClassifier(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Name identifies this classifier for logging.
func (c *GeminiClassifier) Name() string {
	return "gemini"
}

// Close releases the underlying API client.
func (c *GeminiClassifier) Close() error {
	return c.client.Close()
}

// Classify sends the whole batch in a single prompt and parses the JSON
// answer. Ids the model drops or answers with an unusable category are
// simply absent from the result; the caller treats those as per-transaction
// failures.
func (c *GeminiClassifier) Classify(ctx context.Context, batch []ClassificationRequest) ([]ClassificationResult, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	prompt := buildClassificationPrompt(batch)
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	results, err := parseClassificationResponse(responseText)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Gemini classification response parsed",
		logging.Field{Key: "requested", Value: len(batch)},
		logging.Field{Key: "answered", Value: len(results)})
	return results, nil
}

// buildClassificationPrompt renders the batch and the closed category
// vocabulary into a single prompt.
func buildClassificationPrompt(batch []ClassificationRequest) string {
	var categories strings.Builder
	for _, category := range models.AllCategories {
		categories.WriteString("- ")
		categories.WriteString(category.String())
		categories.WriteString("\n")
	}

	var transactions strings.Builder
	for _, request := range batch {
		fmt.Fprintf(&transactions, "%s: %s\n", request.ID, request.Description)
	}

	return fmt.Sprintf(`You are a transaction categorizer for carbon footprint analysis.

You MUST use ONLY these exact categories (no others allowed):
%s
For each transaction below, assign the most appropriate category based on the
merchant or description. Use "miscellaneous" if no category fits well.

Respond with a JSON array only, in this format:
[{"id": "<transaction id>", "category": "<category_name>"}]

Transactions to categorize:
%s`, categories.String(), transactions.String())
}

// parseClassificationResponse extracts the JSON result array from the raw
// model output.
func parseClassificationResponse(responseText string) ([]ClassificationResult, error) {
	match := jsonArrayPattern.FindString(responseText)
	if match == "" {
		return nil, fmt.Errorf("response did not contain a JSON array")
	}

	var results []ClassificationResult
	if err := json.Unmarshal([]byte(match), &results); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}
	return results, nil
}
