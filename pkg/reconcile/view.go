package reconcile

import (
	"encoding/json"
	"strconv"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/measure"
)

// ColumnKind tells how to read the cells of a view column.
type ColumnKind int

// Column kinds. Key, ground and mirror cells hold dataset.Value, mean cells
// hold measure.Measure, status cells hold Status and score cells float64.
const (
	KindKey ColumnKind = iota
	KindMean
	KindStatus
	KindGround
	KindMirror
	KindScore
)

var kindNames = map[ColumnKind]string{
	KindKey:    "key",
	KindMean:   "mean",
	KindStatus: "status",
	KindGround: "ground",
	KindMirror: "mirror",
	KindScore:  "score",
}

// String returns the kind name
func (k ColumnKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Column describes a view column.
type Column struct {
	Name      string     `json:"name" yaml:"name"`
	Kind      ColumnKind `json:"-" yaml:"-"`
	Attribute string     `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Strategy  string     `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

var (
	meanColumn   = Column{Name: constants.MeanColumn, Kind: KindMean}
	statusColumn = Column{Name: constants.StatusColumn, Kind: KindStatus}
)

// View is an immutable table derived from a Map.
type View struct {
	columns []Column
	index   map[string]int
	rows    [][]any
}

func newView(columns []Column, rows [][]any) *View {
	v := &View{columns: columns, rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		v.index[c.Name] = i
	}
	return v
}

// Columns returns the column descriptors.
func (v *View) Columns() []Column { return append([]Column(nil), v.columns...) }

// ColumnNames returns the column names in order.
func (v *View) ColumnNames() []string {
	out := make([]string, len(v.columns))
	for i, c := range v.columns {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of a column, or a NotFoundError.
func (v *View) Index(name string) (int, error) {
	i, ok := v.index[name]
	if !ok {
		return -1, errors.NewNotFoundError("column", name)
	}
	return i, nil
}

// Has reports whether the view has a column.
func (v *View) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Len returns the number of rows.
func (v *View) Len() int { return len(v.rows) }

// Cell returns the cell at row i, column j.
func (v *View) Cell(i, j int) any { return v.rows[i][j] }

// Row returns a copy of row i.
func (v *View) Row(i int) []any { return append([]any(nil), v.rows[i]...) }

// Select keeps the rows accepted by keep and projects the named columns
// in the given order.
func (v *View) Select(keep func(row int) bool, names ...string) (*View, error) {
	idx := make([]int, len(names))
	cols := make([]Column, len(names))
	for k, n := range names {
		j, err := v.Index(n)
		if err != nil {
			return nil, err
		}
		idx[k] = j
		cols[k] = v.columns[j]
	}
	var rows [][]any
	for i, r := range v.rows {
		if keep != nil && !keep(i) {
			continue
		}
		out := make([]any, len(idx))
		for k, j := range idx {
			out[k] = r[j]
		}
		rows = append(rows, out)
	}
	return newView(cols, rows), nil
}

// Strings renders every cell as text. Nulls are empty and undefined means
// render as n/a.
func (v *View) Strings() [][]string {
	out := make([][]string, len(v.rows))
	for i, r := range v.rows {
		cells := make([]string, len(r))
		for j, c := range r {
			cells[j] = FormatCell(c)
		}
		out[i] = cells
	}
	return out
}

// FormatCell renders one view cell.
func FormatCell(c any) string {
	switch t := c.(type) {
	case measure.Measure:
		return t.String()
	case Status:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return dataset.String(t)
	}
}

// Records returns one ordered column/value list per row, suitable for
// structured output.
func (v *View) Records() []map[string]any {
	out := make([]map[string]any, len(v.rows))
	for i, r := range v.rows {
		rec := make(map[string]any, len(r))
		for j, c := range r {
			rec[v.columns[j].Name] = plain(c)
		}
		out[i] = rec
	}
	return out
}

func plain(c any) any {
	switch t := c.(type) {
	case measure.Measure:
		if f, ok := t.Get(); ok {
			return f
		}
		return nil
	case Status:
		return string(t)
	default:
		return t
	}
}

type positional struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

func (v *View) positional() positional {
	rows := make([][]any, len(v.rows))
	for i, r := range v.rows {
		cells := make([]any, len(r))
		for j, c := range r {
			cells[j] = plain(c)
		}
		rows[i] = cells
	}
	return positional{Columns: v.ColumnNames(), Rows: rows}
}

// MarshalJSON encodes the view as column names plus positional rows.
func (v *View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.positional())
}

// MarshalYAML mirrors MarshalJSON.
func (v *View) MarshalYAML() (any, error) {
	return v.positional(), nil
}
