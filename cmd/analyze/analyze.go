// Package analyze handles the end-to-end statement analysis command
package analyze

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"greenspend/carbonstmt/cmd/root"
	"greenspend/carbonstmt/internal/container"
	"greenspend/carbonstmt/internal/extractor"
	"greenspend/carbonstmt/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a bank statement and estimate its carbon footprint",
	Long: `Analyze reads a bank statement (PDF, CSV or plain text), categorizes each
debit transaction, estimates a carbon footprint range per transaction,
and writes an aggregate report.`,
	RunE: analyzeFunc,
}

var highValueOut string

func init() {
	Cmd.Flags().StringVar(&highValueOut, "high-value-csv", "", "Also write excluded high-value transactions to this CSV file")
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("input file is required")
	}

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

	log := c.GetLogger()
	log.Info("Analyzing statement")

	extracted, err := extractStatement(c, root.SharedFlags.Input)
	if err != nil {
		return err
	}
	if len(extracted.Transactions) == 0 {
		return fmt.Errorf("no transactions found in %s", root.SharedFlags.Input)
	}

	result, transactions, err := c.GetPipeline().RunDetailed(ctx, extracted.Transactions)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	result.Warnings = append(extracted.Warnings, result.Warnings...)

	if gen := c.GetInsightsGenerator(); gen != nil {
		tips, insErr := gen.Generate(ctx, result)
		if insErr != nil {
			root.Log.Warnf("Insights unavailable: %v", insErr)
		}
		for _, tip := range tips {
			root.Log.Infof("Insight: %s", tip)
		}
	}

	if highValueOut != "" && len(result.HighValueExcluded) > 0 {
		if err := writeHighValueCSV(c, result.HighValueExcluded, highValueOut); err != nil {
			return err
		}
	}

	return writeReport(c, result, transactions)
}

func extractStatement(c *container.Container, path string) (extractor.Outcome, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := c.GetPDFExtractor().ExtractText(path)
		if err != nil {
			return extractor.Outcome{}, fmt.Errorf("failed to read PDF statement: %w", err)
		}
		return c.GetExtractor().Extract(text), nil
	case ".csv":
		f, err := os.Open(path) // #nosec G304 -- statement path comes from the CLI user
		if err != nil {
			return extractor.Outcome{}, fmt.Errorf("failed to read statement: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				root.Log.Warnf("Error closing statement file: %v", closeErr)
			}
		}()
		return c.GetExtractor().ExtractCSV(f)
	default:
		data, err := os.ReadFile(path) // #nosec G304 -- statement path comes from the CLI user
		if err != nil {
			return extractor.Outcome{}, fmt.Errorf("failed to read statement: %w", err)
		}
		return c.GetExtractor().Extract(string(data)), nil
	}
}

func writeReport(c *container.Container, result models.AggregateResult, transactions []models.Transaction) error {
	out := os.Stdout
	if root.SharedFlags.Output != "" {
		f, err := os.Create(root.SharedFlags.Output) // #nosec G304 -- output path comes from the CLI user
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				root.Log.Warnf("Error closing output file: %v", closeErr)
			}
		}()
		out = f
	}

	switch strings.ToLower(root.SharedFlags.Format) {
	case "json", "":
		data, err := c.GetReportGenerator().GenerateJSON(result)
		if err != nil {
			return err
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	case "csv":
		if err := c.GetReportGenerator().WriteTransactionsCSV(transactions, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported report format: %s", root.SharedFlags.Format)
	}

	root.Log.Info("Analysis completed successfully!")
	return nil
}

func writeHighValueCSV(c *container.Container, excluded []models.HighValueTransaction, path string) error {
	f, err := os.Create(path) // #nosec G304 -- output path comes from the CLI user
	if err != nil {
		return fmt.Errorf("failed to create high-value CSV: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			root.Log.Warnf("Error closing high-value CSV: %v", closeErr)
		}
	}()
	return c.GetReportGenerator().WriteHighValueCSV(excluded, f)
}
