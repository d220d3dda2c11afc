// Package report renders comparison results for people: the plain text
// summary, a markdown document and table data for the CLI formatters.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/agentstation/mirror/internal/output"
	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/measure"
	"github.com/agentstation/mirror/pkg/stats"
)

// Text writes the summary in the classic layout:
//
//	VOLUMETRY:
//		|- Ground truth: 2
//		|- Mirror: 3
//
// followed by KEY MATCHING and, when subset selects any attribute, FIELD
// ASSERTIVITY. A subset of ["*"] selects every attribute.
func Text(w io.Writer, s *stats.Snapshot, subset []string) error {
	p := &printer{w: w}

	p.line("VOLUMETRY:")
	p.line("\t|- Ground truth: %d", s.Volume.Ground)
	p.line("\t|- Mirror: %d", s.Volume.Mirror)

	p.line("\nKEY MATCHING:")
	p.line("\t|- Matched keys: %d (%s)", s.KeyMatching.Matched, wholePercent(s.Rates.Matched))
	p.line("\t|- Unmatched keys (ground): %d (%s)", s.KeyMatching.UnmatchedGround, wholePercent(s.Rates.UnmatchedGround))
	p.line("\t|- Unmatched keys (mirror): %d (%s)", s.KeyMatching.UnmatchedMirror, wholePercent(s.Rates.UnmatchedMirror))

	fields := s.Subset(subset)
	if len(fields) > 0 {
		p.line("\nFIELD ASSERTIVITY:")
		for _, fa := range fields {
			for _, sa := range fa.Strategies {
				p.line("\t|- %s [%s]: %s", fa.Attribute, sa.Strategy, Percent(sa.Assertivity))
			}
		}
	}
	return p.err
}

// Percent renders a percentage with at most two decimals, or n/a.
func Percent(m measure.Measure) string {
	v, ok := m.Get()
	if !ok {
		return constants.NotApplicable
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// wholePercent truncates a rate to an integer percentage.
func wholePercent(m measure.Measure) string {
	v, ok := m.Get()
	if !ok {
		return constants.NotApplicable
	}
	return strconv.FormatFloat(math.Trunc(v), 'f', 0, 64) + "%"
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// Tables projects a snapshot onto table data.
func Tables(s *stats.Snapshot, subset []string) []output.Data {
	tables := []output.Data{
		{
			Title:   "VOLUMETRY",
			Headers: []string{"Dataset", "Records"},
			Rows: [][]string{
				{"ground", strconv.Itoa(s.Volume.Ground)},
				{"mirror", strconv.Itoa(s.Volume.Mirror)},
			},
			ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
		},
		{
			Title:   "KEY MATCHING",
			Headers: []string{"Status", "Records", "Rate"},
			Rows: [][]string{
				{"matched", strconv.Itoa(s.KeyMatching.Matched), Percent(s.Rates.Matched)},
				{"unmatched ground", strconv.Itoa(s.KeyMatching.UnmatchedGround), Percent(s.Rates.UnmatchedGround)},
				{"unmatched mirror", strconv.Itoa(s.KeyMatching.UnmatchedMirror), Percent(s.Rates.UnmatchedMirror)},
			},
			ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight, output.AlignRight},
		},
	}

	fields := s.Subset(subset)
	if len(fields) == 0 {
		return tables
	}
	assertivity := output.Data{
		Title:           "FIELD ASSERTIVITY",
		Headers:         []string{"Field", "Strategy", "Assertivity"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignRight},
	}
	for _, fa := range fields {
		for _, sa := range fa.Strategies {
			assertivity.Rows = append(assertivity.Rows, []string{fa.Attribute, sa.Strategy, Percent(sa.Assertivity)})
		}
	}
	return append(tables, assertivity)
}
