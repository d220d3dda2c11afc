// Package schema classifies the columns of a mirror dataset against the
// ground reference and derives the effective scoring assignment.
package schema

import (
	"fmt"
	"strings"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/errors"
)

// Reference is the column layout of a ground dataset: its columns in
// order and the subset declared as keys.
type Reference struct {
	columns    []string
	keys       []string
	attributes []string
	isKey      map[string]bool
	known      map[string]bool
}

// NewReference validates a key declaration against the ground columns.
// Attributes are the non-key columns in column order.
func NewReference(columns, keys []string) (*Reference, error) {
	if len(keys) == 0 {
		return nil, errors.Configf("reference", "at least one key column is required")
	}
	r := &Reference{
		columns: append([]string(nil), columns...),
		isKey:   make(map[string]bool, len(keys)),
		known:   make(map[string]bool, len(columns)),
	}
	for _, c := range columns {
		r.known[c] = true
	}
	for _, k := range keys {
		if !r.known[k] {
			return nil, errors.Configf("reference", "key %q is not a column of the ground dataset", k)
		}
		if r.isKey[k] {
			return nil, errors.Configf("reference", "key %q is declared twice", k)
		}
		r.isKey[k] = true
	}
	// keys follow column order
	for _, c := range r.columns {
		if r.isKey[c] {
			r.keys = append(r.keys, c)
		} else {
			r.attributes = append(r.attributes, c)
		}
	}
	return r, nil
}

// Columns returns the ground columns.
func (r *Reference) Columns() []string { return append([]string(nil), r.columns...) }

// Keys returns the key columns.
func (r *Reference) Keys() []string { return append([]string(nil), r.keys...) }

// Attributes returns the non-key columns.
func (r *Reference) Attributes() []string { return append([]string(nil), r.attributes...) }

// IsKey reports whether name is a declared key.
func (r *Reference) IsKey(name string) bool { return r.isKey[name] }

// HasColumn reports whether name is a ground column.
func (r *Reference) HasColumn(name string) bool { return r.known[name] }

// ScoreColumn names the score of an attribute under a strategy.
func ScoreColumn(attribute, strategy string) string {
	return attribute + constants.ScoreSeparator + strategy
}

// SplitScoreColumn is the inverse of ScoreColumn.
func SplitScoreColumn(name string) (attribute, strategy string, ok bool) {
	i := strings.LastIndex(name, constants.ScoreSeparator)
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

// GroundColumn names the ground value of an attribute in a raw map.
func GroundColumn(attribute string) string { return attribute + constants.GroundSuffix }

// MirrorColumn names the mirror value of an attribute in a raw map.
func MirrorColumn(attribute string) string { return attribute + constants.MirrorSuffix }

// IsReserved reports whether a column name carries the internal prefix.
func IsReserved(name string) bool {
	return strings.HasPrefix(name, constants.ReservedPrefix)
}

func describe(names []string) string {
	return fmt.Sprintf("[%s]", strings.Join(names, ", "))
}
