package report

import (
	"strconv"

	"github.com/agentstation/mirror/internal/output"
	"github.com/agentstation/mirror/pkg/analysis"
	"github.com/agentstation/mirror/pkg/reconcile"
)

// nullSignature is shown for rows that diverge on no reportable field.
const nullSignature = "(none)"

// Frequency projects an error-frequency table onto table data.
func Frequency(t *analysis.FrequencyTable) output.Data {
	d := output.Data{
		Headers:         []string{"Failing fields", "Rows", "Share"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight, output.AlignRight},
	}
	for i, g := range t.Groups {
		sig := g.Signature
		if g.Null {
			sig = nullSignature
		}
		d.Rows = append(d.Rows, []string{sig, strconv.Itoa(g.Count), Percent(t.Share(i))})
	}
	return d
}

// View projects a reconciliation view onto table data.
func View(v *reconcile.View) output.Data {
	return output.Data{
		Headers: v.ColumnNames(),
		Rows:    v.Strings(),
	}
}
