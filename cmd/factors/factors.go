// Package factors handles emission factor inspection commands
package factors

import (
	"fmt"
	"os"
	"text/tabwriter"

	"greenspend/carbonstmt/cmd/root"
	"greenspend/carbonstmt/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the factors command
var Cmd = &cobra.Command{
	Use:   "factors",
	Short: "List the emission factors used for carbon estimation",
	Long: `List the emission factor range for each spending category, as loaded
from the factors file or the built-in defaults.`,
	RunE: factorsFunc,
}

func factorsFunc(cmd *cobra.Command, args []string) error {
	c, err := container.NewContainer(cmd.Context(), root.Cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			root.Log.Warnf("Error during cleanup: %v", closeErr)
		}
	}()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tMIN\tMAX\tSOURCE")
	for _, factor := range c.GetEstimator().Factors() {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%s\n",
			factor.Category.DisplayName(), factor.MinFactor, factor.MaxFactor, factor.Source)
	}
	fmt.Fprintln(w, "\nFactors are kg CO2e per 1000 currency units spent.")
	return w.Flush()
}
