// Package insights turns an aggregate result into free-text recommendations
// via an external language model. Insights are optional decoration: any
// failure here degrades to an empty insight list and never fails a run.
package insights

import (
	"context"
	"fmt"
	"strings"

	"greenspend/carbonstmt/internal/logging"
	"greenspend/carbonstmt/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator produces recommendations from an aggregate result.
type Generator interface {
	Generate(ctx context.Context, result models.AggregateResult) ([]string, error)
}

// GeminiGenerator implements Generator using the Google Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiGenerator creates a GeminiGenerator.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiGenerator, error) {
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
	return &GeminiGenerator{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// Generate asks the model for reduction recommendations based on the top
// emission categories.
func (g *GeminiGenerator) Generate(ctx context.Context, result models.AggregateResult) ([]string, error) {
	prompt := buildInsightsPrompt(result)
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	insights := parseInsights(responseText)

	g.logger.Debug("Insights generated",
		logging.Field{Key: "count", Value: len(insights)})
	return insights, nil
}

func buildInsightsPrompt(result models.AggregateResult) string {
	var breakdown strings.Builder
	for _, total := range result.TopCategories(5) {
		fmt.Fprintf(&breakdown, "- %s: %.1f-%.1f kg CO2e (%d transactions, %.0f%% of worst case)\n",
			total.DisplayName, total.Carbon.Min, total.Carbon.Max, total.Count, total.Percentage)
	}

	return fmt.Sprintf(`You are a sustainability advisor. A person's monthly spending implies
an estimated carbon footprint of %.1f to %.1f kg CO2e.

Top emission categories:
%s
Give 3 to 5 short, practical recommendations for reducing this footprint.
Each recommendation on its own line, starting with "- ". No preamble.`,
		result.Total.Min, result.Total.Max, breakdown.String())
}

func parseInsights(responseText string) []string {
	var insights []string
	for _, line := range strings.Split(responseText, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if line != "" {
			insights = append(insights, line)
		}
	}
	return insights
}
