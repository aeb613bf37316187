// Package root contains the root command for the application
package root

import (
	"greenspend/carbonstmt/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "carbonstmt",
		Short: "Estimate the carbon footprint of bank statement spending.",
		Long: `carbonstmt reads bank statement transactions, categorizes spending
with keyword rules and an AI fallback, and estimates a carbon footprint
range per category and period.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to carbonstmt!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
			return nil
		},
	}

	// SharedFlags are common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Description is the categorize command's transaction description
	Description string

	// Amount is the categorize command's transaction amount
	Amount string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file (PDF or plain text)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "json", "Report format: json or csv")
}
