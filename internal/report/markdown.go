package report

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/mirror/pkg/analysis"
	"github.com/agentstation/mirror/pkg/stats"
)

// Markdown writes a snapshot as a markdown document titled with the
// mirror label. A non-nil frequency table adds an error breakdown.
func Markdown(w io.Writer, label string, s *stats.Snapshot, subset []string, freq *analysis.FrequencyTable) error {
	doc := md.NewMarkdown(w)
	doc.H1(fmt.Sprintf("Mirror report: %s", label)).LF()

	doc.H2("Volumetry").LF()
	doc.BulletList(
		fmt.Sprintf("%s %d", md.Bold("Ground truth:"), s.Volume.Ground),
		fmt.Sprintf("%s %d", md.Bold("Mirror:"), s.Volume.Mirror),
	).LF()

	doc.H2("Key matching").LF()
	doc.Table(md.TableSet{
		Header: []string{"Status", "Records", "Rate (%)"},
		Rows: [][]string{
			{"matched", fmt.Sprint(s.KeyMatching.Matched), Percent(s.Rates.Matched)},
			{"unmatched ground", fmt.Sprint(s.KeyMatching.UnmatchedGround), Percent(s.Rates.UnmatchedGround)},
			{"unmatched mirror", fmt.Sprint(s.KeyMatching.UnmatchedMirror), Percent(s.Rates.UnmatchedMirror)},
		},
	}).LF()

	if fields := s.Subset(subset); len(fields) > 0 {
		var rows [][]string
		for _, fa := range fields {
			for _, sa := range fa.Strategies {
				rows = append(rows, []string{fa.Attribute, sa.Strategy, Percent(sa.Assertivity)})
			}
		}
		doc.H2("Field assertivity").LF()
		doc.Table(md.TableSet{
			Header: []string{"Field", "Strategy", "Assertivity (%)"},
			Rows:   rows,
		}).LF()
	}

	if freq != nil && freq.Len() > 0 {
		d := Frequency(freq)
		doc.H2("Error frequency").LF()
		doc.PlainTextf("%d matched records diverge on at least one field.", freq.Total()).LF().LF()
		doc.Table(md.TableSet{Header: d.Headers, Rows: d.Rows}).LF()
	}

	return doc.Build()
}
