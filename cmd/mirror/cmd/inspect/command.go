// Package inspect implements the inspect command.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/mirror/cmd/application"
	"github.com/agentstation/mirror/internal/cmd/comparison"
	"github.com/agentstation/mirror/internal/output"
	"github.com/agentstation/mirror/internal/report"
	"github.com/agentstation/mirror/pkg/analysis"
)

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	settings := app.Comparison()
	var (
		strategy string
		hideKeys bool
		extra    []string
	)

	cmd := &cobra.Command{
		Use:     "inspect <field>",
		GroupID: "core",
		Short:   "List the records diverging on a field",
		Long: `Inspect lists the matched records whose score for the field is below 1,
side by side with the ground truth value.

The strategy defaults to exact-match when the field is scored with it,
otherwise to the field's first strategy.`,
		Example: `  mirror inspect name --ground crm.csv --mirror erp.csv --keys id
  mirror inspect name --strategy similarity-ratio --extra city_ground ...
  mirror inspect name --hide-keys ...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			m, err := comparison.Run(cmd.Context(), settings, app.Logger())
			if err != nil {
				return err
			}

			opts := []analysis.DivergenceOption{analysis.WithExtraFields(extra...)}
			if strategy != "" {
				opts = append(opts, analysis.WithStrategy(strategy))
			}
			if hideKeys {
				opts = append(opts, analysis.HideKeys())
			}
			v, err := m.InspectDivergenceOnField(args[0], opts...)
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), format, report.View(v), v)
		},
	}

	settings.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&strategy, "strategy", "", "strategy whose score selects the records")
	cmd.Flags().BoolVar(&hideKeys, "hide-keys", false, "omit the key columns")
	cmd.Flags().StringSliceVar(&extra, "extra", nil, "additional map columns shown next to the field (e.g. city_ground, _mean)")
	return cmd
}
