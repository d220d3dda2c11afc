package analysis

import (
	"sort"
	"strings"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/measure"
	"github.com/agentstation/mirror/pkg/reconcile"
	"github.com/agentstation/mirror/pkg/schema"
)

// Group is a set of matched rows that failed on the same score columns.
type Group struct {
	// Signature is the space-joined failing score columns, empty when Null.
	Signature string   `json:"signature" yaml:"signature"`
	Columns   []string `json:"columns" yaml:"columns"`
	// Null marks rows whose mean is below 1 without any qualifying column.
	Null  bool `json:"null,omitempty" yaml:"null,omitempty"`
	Count int  `json:"count" yaml:"count"`
}

// FrequencyTable lists failure signatures by descending frequency.
type FrequencyTable struct {
	Groups []Group `json:"groups" yaml:"groups"`
	total  int
}

// Total returns the number of rows counted, the sum of all group counts.
func (t *FrequencyTable) Total() int { return t.total }

// Len returns the number of groups.
func (t *FrequencyTable) Len() int { return len(t.Groups) }

// Share returns the percentage of counted rows falling in group i.
func (t *FrequencyTable) Share(i int) measure.Measure {
	return measure.Percent(t.Groups[i].Count, t.total)
}

// ErrorFrequency groups the matched rows whose mean is below 1 by the set
// of score columns scoring below 1. Keys and internal columns never enter
// a signature. Groups are ordered by count, ties by first occurrence.
func ErrorFrequency(m *reconcile.Map) *FrequencyTable {
	columns := m.ScoreColumns()
	eligible := make([]bool, len(columns))
	cl := m.Classification()
	for i, c := range columns {
		eligible[i] = !schema.IsReserved(c) && !cl.IsKey(c)
	}

	table := &FrequencyTable{}
	positions := map[string]int{}
	for i := 0; i < m.Len(); i++ {
		r := m.Row(i)
		if r.Status != reconcile.StatusBoth || !r.Mean.Less(constants.PerfectScore) {
			continue
		}
		var failing []string
		for j, v := range r.Scores {
			if eligible[j] && v < constants.PerfectScore {
				failing = append(failing, columns[j])
			}
		}
		sig := strings.Join(failing, constants.SignatureSeparator)
		key := sig
		if len(failing) == 0 {
			// reserved so it never collides with a real signature
			key = "\x00null"
		}
		table.total++
		if p, ok := positions[key]; ok {
			table.Groups[p].Count++
			continue
		}
		positions[key] = len(table.Groups)
		table.Groups = append(table.Groups, Group{
			Signature: sig,
			Columns:   failing,
			Null:      len(failing) == 0,
			Count:     1,
		})
	}

	sort.SliceStable(table.Groups, func(i, j int) bool {
		return table.Groups[i].Count > table.Groups[j].Count
	})
	return table
}
