// Package categorize handles single-transaction categorization commands
package categorize

import (
	"fmt"
	"time"

	"greenspend/carbonstmt/cmd/root"
	"greenspend/carbonstmt/internal/container"
	"greenspend/carbonstmt/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Categorize a transaction description using the keyword rules, falling
back to the AI classifier when no rule matches, and print the resulting
category with its estimated carbon range.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Transaction amount (optional, enables carbon estimation)")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		root.Log.Warnf("Failed to mark description flag required: %v", err)
	}
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := container.NewContainer(ctx, root.Cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			root.Log.Warnf("Error during cleanup: %v", closeErr)
		}
	}()

	tx := models.Transaction{
		ID:          uuid.NewString(),
		Date:        time.Now(),
		Description: root.Description,
		Direction:   models.DirectionDebit,
	}
	if root.Amount != "" {
		amount, parseErr := decimal.NewFromString(root.Amount)
		if parseErr != nil {
			return fmt.Errorf("invalid amount %q: %w", root.Amount, parseErr)
		}
		tx.Amount = amount
	}

	result, transactions, err := c.GetPipeline().RunDetailed(ctx, []models.Transaction{tx})
	if err != nil {
		return fmt.Errorf("categorization failed: %w", err)
	}

	for _, warning := range result.Warnings {
		root.Log.Warn(warning)
	}

	if len(result.HighValueExcluded) > 0 {
		excluded := result.HighValueExcluded[0]
		root.Log.Infof("Transaction excluded from spend-based estimation: %s", excluded.Reason)
		return nil
	}
	if len(transactions) == 0 {
		root.Log.Info("Transaction was filtered out (credit or malformed)")
		return nil
	}

	categorized := transactions[0]
	root.Log.Infof("Category: %s (%s)", categorized.Category.DisplayName(), categorized.Source)
	if categorized.Carbon != nil && !categorized.Carbon.IsZero() {
		root.Log.Infof("Estimated carbon: %.2f to %.2f kg CO2e",
			categorized.Carbon.Min, categorized.Carbon.Max)
	}
	return nil
}
