// Package strategies implements the strategies command.
package strategies

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/mirror/cmd/application"
	"github.com/agentstation/mirror/internal/output"
	"github.com/agentstation/mirror/pkg/score"
)

// Info describes a registered strategy.
type Info struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// List returns the strategies of r with their aliases.
func List(r *score.Registry) []Info {
	aliases := map[string][]string{}
	for alias, target := range r.Aliases() {
		aliases[target] = append(aliases[target], alias)
	}
	var out []Info
	for _, s := range r.List() {
		sort.Strings(aliases[s.Name()])
		out = append(out, Info{
			Name:        s.Name(),
			Description: s.Description(),
			Aliases:     aliases[s.Name()],
		})
	}
	return out
}

// NewCommand creates the strategies command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "strategies",
		GroupID: "reference",
		Short:   "List the scoring strategies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			infos := List(score.Default())

			table := output.Data{
				Headers:  []string{"Name", "Description", "Aliases"},
				WideOnly: []int{2},
			}
			for _, i := range infos {
				table.Rows = append(table.Rows, []string{i.Name, i.Description, strings.Join(i.Aliases, ", ")})
			}
			return output.Render(cmd.OutOrStdout(), format, table, infos)
		},
	}
}
