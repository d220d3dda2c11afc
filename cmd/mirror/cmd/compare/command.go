// Package compare implements the compare command.
package compare

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/mirror/cmd/application"
	"github.com/agentstation/mirror/internal/cmd/comparison"
	"github.com/agentstation/mirror/internal/output"
	"github.com/agentstation/mirror/internal/report"
)

// NewCommand creates the compare command.
func NewCommand(app application.Application) *cobra.Command {
	settings := app.Comparison()
	var fields []string

	cmd := &cobra.Command{
		Use:     "compare",
		GroupID: "core",
		Short:   "Compare a dataset against the ground truth",
		Long: `Compare reconciles a mirror dataset with the ground truth on the key
columns and reports volumes, key matching and per-field assertivity.

Fields are scored with exact-match unless --score assigns other strategies.`,
		Example: `  mirror compare --ground crm.csv --mirror erp.csv --keys id
  mirror compare --ground crm.csv --mirror erp.csv --keys id --score name=exact-match,similarity-ratio
  mirror compare --ground crm.csv --mirror erp.csv --keys id --fields name,city -o text`,
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

			s := m.Stats()
			w := cmd.OutOrStdout()
			switch format {
			case output.FormatText:
				return report.Text(w, s, fields)
			case output.FormatMarkdown:
				return report.Markdown(w, m.Label(), s, fields, m.MapFieldErrorFrequency())
			default:
				return output.Render(w, format, report.Tables(s, fields), s)
			}
		},
	}

	settings.AddFlags(cmd.Flags())
	cmd.Flags().StringSliceVar(&fields, "fields", []string{"*"}, "fields listed under field assertivity (* for all)")
	return cmd
}
