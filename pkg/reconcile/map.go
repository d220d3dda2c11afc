package reconcile

import (
	"time"

	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/measure"
	"github.com/agentstation/mirror/pkg/schema"
)

// Row is one reconciled key combination. Ground and Mirror are aligned
// with the classification's attributes and Scores with its score columns.
// Values missing on one side are null.
type Row struct {
	Keys   []dataset.Value
	Status Status
	Ground []dataset.Value
	Mirror []dataset.Value
	Scores []float64
	Mean   measure.Measure
}

func (r Row) clone() Row {
	return Row{
		Keys:   append([]dataset.Value(nil), r.Keys...),
		Status: r.Status,
		Ground: append([]dataset.Value(nil), r.Ground...),
		Mirror: append([]dataset.Value(nil), r.Mirror...),
		Scores: append([]float64(nil), r.Scores...),
		Mean:   r.Mean,
	}
}

// Metadata describes a build.
type Metadata struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Concurrency int
}

// Map is the reconciled relation. It is never mutated after Build.
type Map struct {
	classification *schema.Classification
	scoreColumns   []string
	scoreIndex     map[string]int
	rows           []Row
	counts         map[Status]int
	metadata       Metadata
}

func newMap(cl *schema.Classification, rows []Row) *Map {
	m := &Map{
		classification: cl,
		scoreColumns:   cl.ScoreColumns(),
		rows:           rows,
		counts:         make(map[Status]int, 3),
	}
	m.scoreIndex = make(map[string]int, len(m.scoreColumns))
	for i, c := range m.scoreColumns {
		m.scoreIndex[c] = i
	}
	for _, r := range rows {
		m.counts[r.Status]++
	}
	return m
}

// Classification returns the layout the map was built from. Callers must
// not modify it.
func (m *Map) Classification() *schema.Classification { return m.classification }

// Keys returns the key column names.
func (m *Map) Keys() []string { return append([]string(nil), m.classification.Keys...) }

// Attributes returns the scored attribute names.
func (m *Map) Attributes() []string { return append([]string(nil), m.classification.Attributes...) }

// Strategies returns the strategies scoring an attribute.
func (m *Map) Strategies(attribute string) []string {
	return m.classification.Strategies(attribute)
}

// ScoreColumns returns the attribute:strategy column names in order.
func (m *Map) ScoreColumns() []string { return append([]string(nil), m.scoreColumns...) }

// ScoreIndex returns the position of a score column within Row.Scores.
func (m *Map) ScoreIndex(attribute, strategy string) (int, bool) {
	i, ok := m.scoreIndex[schema.ScoreColumn(attribute, strategy)]
	return i, ok
}

// Len returns the number of rows.
func (m *Map) Len() int { return len(m.rows) }

// Row returns a copy of row i.
func (m *Map) Row(i int) Row { return m.rows[i].clone() }

// Rows returns a copy of every row.
func (m *Map) Rows() []Row {
	out := make([]Row, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.clone()
	}
	return out
}

// Count returns the number of rows with a status.
func (m *Map) Count(s Status) int { return m.counts[s] }

// Metadata returns build timings.
func (m *Map) Metadata() Metadata { return m.metadata }

// Raw returns the full view: keys, _mean, _merge, then for every
// attribute its ground value, mirror value and score columns.
func (m *Map) Raw() *View {
	cl := m.classification
	cols := m.leadingColumns()
	for _, a := range cl.Attributes {
		cols = append(cols,
			Column{Name: schema.GroundColumn(a), Kind: KindGround, Attribute: a},
			Column{Name: schema.MirrorColumn(a), Kind: KindMirror, Attribute: a},
		)
		for _, s := range cl.Scoring[a] {
			cols = append(cols, Column{Name: schema.ScoreColumn(a, s), Kind: KindScore, Attribute: a, Strategy: s})
		}
	}

	rows := make([][]any, len(m.rows))
	for i, r := range m.rows {
		cells := m.leadingCells(r, len(cols))
		col := 0
		for a, attr := range cl.Attributes {
			cells = append(cells, r.Ground[a], r.Mirror[a])
			for range cl.Scoring[attr] {
				cells = append(cells, r.Scores[col])
				col++
			}
		}
		rows[i] = cells
	}
	return newView(cols, rows)
}

// Compact returns keys, _mean, _merge and the score columns.
func (m *Map) Compact() *View {
	cl := m.classification
	cols := m.leadingColumns()
	for _, a := range cl.Attributes {
		for _, s := range cl.Scoring[a] {
			cols = append(cols, Column{Name: schema.ScoreColumn(a, s), Kind: KindScore, Attribute: a, Strategy: s})
		}
	}

	rows := make([][]any, len(m.rows))
	for i, r := range m.rows {
		cells := m.leadingCells(r, len(cols))
		for _, s := range r.Scores {
			cells = append(cells, s)
		}
		rows[i] = cells
	}
	return newView(cols, rows)
}

func (m *Map) leadingColumns() []Column {
	cols := make([]Column, 0, len(m.classification.Keys)+2+3*len(m.scoreColumns))
	for _, k := range m.classification.Keys {
		cols = append(cols, Column{Name: k, Kind: KindKey})
	}
	return append(cols, meanColumn, statusColumn)
}

func (m *Map) leadingCells(r Row, width int) []any {
	cells := make([]any, 0, width)
	for _, k := range r.Keys {
		cells = append(cells, k)
	}
	return append(cells, r.Mean, r.Status)
}
