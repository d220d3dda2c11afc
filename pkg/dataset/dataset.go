// Package dataset provides the in-memory tabular model shared by the
// reconciliation engine: ordered named columns, positional records and
// normalised scalar values, plus loaders for CSV, JSON, YAML and SQL.
package dataset

import (
	"fmt"

	"github.com/agentstation/mirror/pkg/errors"
)

// Record is a positional row aligned with its dataset's columns.
type Record []Value

// Dataset is an immutable ordered table.
type Dataset struct {
	name    string
	columns []string
	index   map[string]int
	records []Record
}

// New builds a dataset from column names and positional records.
// Values are normalised; the input slices are not retained.
func New(columns []string, records ...[]any) (*Dataset, error) {
	d, err := newDataset(columns)
	if err != nil {
		return nil, err
	}
	d.records = make([]Record, 0, len(records))
	for i, r := range records {
		if err := d.append(i, r); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// FromMaps builds a dataset from keyed rows. Columns fix the output
// order; fields missing from a row are null and fields absent from
// columns are ignored.
func FromMaps(columns []string, rows []map[string]any) (*Dataset, error) {
	d, err := newDataset(columns)
	if err != nil {
		return nil, err
	}
	d.records = make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(columns))
		for j, c := range columns {
			rec[j] = Normalize(row[c])
		}
		d.records = append(d.records, rec)
	}
	return d, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(columns []string, records ...[]any) *Dataset {
	d, err := New(columns, records...)
	if err != nil {
		panic(err)
	}
	return d
}

func newDataset(columns []string) (*Dataset, error) {
	d := &Dataset{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c == "" {
			return nil, errors.NewValidationError("columns", i, fmt.Sprintf("column %d has an empty name", i))
		}
		if _, dup := d.index[c]; dup {
			return nil, errors.NewValidationError("columns", c, fmt.Sprintf("duplicate column %q", c))
		}
		d.index[c] = i
		d.columns[i] = c
	}
	return d, nil
}

func (d *Dataset) append(i int, values []any) error {
	if len(values) != len(d.columns) {
		return errors.NewValidationError("records", i,
			fmt.Sprintf("record %d has %d values, want %d", i, len(values), len(d.columns)))
	}
	rec := make(Record, len(values))
	for j, v := range values {
		rec[j] = Normalize(v)
	}
	d.records = append(d.records, rec)
	return nil
}

// WithName returns a shallow copy of d carrying a display name.
func (d *Dataset) WithName(name string) *Dataset {
	c := *d
	c.name = name
	return &c
}

// Name returns the display name, typically the source it was loaded from.
func (d *Dataset) Name() string { return d.name }

// Columns returns a copy of the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.columns) }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// HasColumn reports whether name is a column of d.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnIndex returns the position of a column.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// At returns the value at record i, column j without bounds translation.
func (d *Dataset) At(i, j int) Value {
	return d.records[i][j]
}

// Value returns the value of a named column in record i.
func (d *Dataset) Value(i int, column string) (Value, error) {
	j, ok := d.index[column]
	if !ok {
		return nil, errors.NewNotFoundError("column", column)
	}
	if i < 0 || i >= len(d.records) {
		return nil, errors.NewNotFoundError("record", fmt.Sprint(i))
	}
	return d.records[i][j], nil
}

// Record returns a copy of record i.
func (d *Dataset) Record(i int) Record {
	out := make(Record, len(d.records[i]))
	copy(out, d.records[i])
	return out
}

// Project returns the values of record i for the given column positions.
func (d *Dataset) Project(i int, positions []int) []Value {
	out := make([]Value, len(positions))
	for k, j := range positions {
		out[k] = d.records[i][j]
	}
	return out
}
