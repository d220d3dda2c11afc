// Package frequency implements the errors command.
package frequency

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/mirror/cmd/application"
	"github.com/agentstation/mirror/internal/cmd/comparison"
	"github.com/agentstation/mirror/internal/output"
	"github.com/agentstation/mirror/internal/report"
)

// NewCommand creates the errors command.
func NewCommand(app application.Application) *cobra.Command {
	settings := app.Comparison()

	cmd := &cobra.Command{
		Use:     "errors",
		GroupID: "core",
		Short:   "Show which field combinations fail together",
		Long: `Errors groups the matched records that are not a perfect match by the
set of scores below 1, most frequent combination first.`,
		Example: `  mirror errors --ground crm.csv --mirror erp.csv --keys id
  mirror errors --ground crm.csv --mirror erp.csv --keys id -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			m, err := comparison.Run(cmd.Context(), settings, app.Logger())
			if err != nil {
				return err
			}

			freq := m.MapFieldErrorFrequency()
			if freq.Len() == 0 && !format.IsStructured() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No diverging records.")
				return err
			}
			return output.Render(cmd.OutOrStdout(), format, report.Frequency(freq), freq)
		},
	}

	settings.AddFlags(cmd.Flags())
	return cmd
}
