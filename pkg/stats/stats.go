// Package stats aggregates a reconciliation map into volume, key
// matching and per-field assertivity figures.
package stats

import (
	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/measure"
	"github.com/agentstation/mirror/pkg/reconcile"
)

// Volume counts the records of each input dataset.
type Volume struct {
	Ground int `json:"ground" yaml:"ground"`
	Mirror int `json:"mirror" yaml:"mirror"`
}

// KeyMatching counts reconciled rows by status.
type KeyMatching struct {
	Matched         int `json:"matched" yaml:"matched"`
	UnmatchedGround int `json:"unmatched_ground" yaml:"unmatched_ground"`
	UnmatchedMirror int `json:"unmatched_mirror" yaml:"unmatched_mirror"`
}

// Rates are key matching counts as percentages. Matched and unmatched
// ground are relative to the ground volume, unmatched mirror to the
// mirror volume.
type Rates struct {
	Matched         measure.Measure `json:"matched" yaml:"matched"`
	UnmatchedGround measure.Measure `json:"unmatched_ground" yaml:"unmatched_ground"`
	UnmatchedMirror measure.Measure `json:"unmatched_mirror" yaml:"unmatched_mirror"`
}

// StrategyAssertivity is the mean score of one strategy as a percentage.
type StrategyAssertivity struct {
	Strategy    string          `json:"strategy" yaml:"strategy"`
	Assertivity measure.Measure `json:"assertivity" yaml:"assertivity"`
}

// FieldAssertivity holds the assertivity of every strategy of a field.
type FieldAssertivity struct {
	Attribute  string                `json:"attribute" yaml:"attribute"`
	Strategies []StrategyAssertivity `json:"strategies" yaml:"strategies"`
}

// Snapshot is the statistics of one mirror.
type Snapshot struct {
	Volume           Volume             `json:"volume" yaml:"volume"`
	KeyMatching      KeyMatching        `json:"key_matching" yaml:"key_matching"`
	Rates            Rates              `json:"rates" yaml:"rates"`
	FieldAssertivity []FieldAssertivity `json:"field_assertivity" yaml:"field_assertivity"`
}

// Rate names a key matching rate.
type Rate string

// Key matching rates
const (
	RateMatched         Rate = "matched"
	RateUnmatchedGround Rate = "unmatched_ground"
	RateUnmatchedMirror Rate = "unmatched_mirror"
)

// Compute derives a snapshot. Volumes come from the inputs, not the join,
// so repeated keys do not inflate them. Assertivity is averaged over
// matched rows only and is not applicable when there are none.
func Compute(m *reconcile.Map, groundLen, mirrorLen int) *Snapshot {
	s := &Snapshot{
		Volume: Volume{Ground: groundLen, Mirror: mirrorLen},
		KeyMatching: KeyMatching{
			Matched:         m.Count(reconcile.StatusBoth),
			UnmatchedGround: m.Count(reconcile.StatusGroundOnly),
			UnmatchedMirror: m.Count(reconcile.StatusMirrorOnly),
		},
	}
	s.Rates = Rates{
		Matched:         measure.Percent(s.KeyMatching.Matched, groundLen),
		UnmatchedGround: measure.Percent(s.KeyMatching.UnmatchedGround, groundLen),
		UnmatchedMirror: measure.Percent(s.KeyMatching.UnmatchedMirror, mirrorLen),
	}

	columns := m.ScoreColumns()
	sums := make([]float64, len(columns))
	both := 0
	for i := 0; i < m.Len(); i++ {
		r := m.Row(i)
		if r.Status != reconcile.StatusBoth {
			continue
		}
		both++
		for j, v := range r.Scores {
			sums[j] += v
		}
	}

	col := 0
	s.FieldAssertivity = make([]FieldAssertivity, 0, len(m.Attributes()))
	for _, attr := range m.Attributes() {
		fa := FieldAssertivity{Attribute: attr}
		for _, strategy := range m.Strategies(attr) {
			a := measure.NotApplicable()
			if both > 0 {
				a = measure.Of(sums[col] / float64(both)).Scale(constants.PercentScale)
			}
			fa.Strategies = append(fa.Strategies, StrategyAssertivity{Strategy: strategy, Assertivity: a})
			col++
		}
		s.FieldAssertivity = append(s.FieldAssertivity, fa)
	}
	return s
}

// MatchRate returns a key matching rate, or an UndefinedMetricError when
// its denominator volume is zero.
func (s *Snapshot) MatchRate(kind Rate) (measure.Measure, error) {
	var (
		m           measure.Measure
		denominator string
	)
	switch kind {
	case RateMatched:
		m, denominator = s.Rates.Matched, "ground volume"
	case RateUnmatchedGround:
		m, denominator = s.Rates.UnmatchedGround, "ground volume"
	case RateUnmatchedMirror:
		m, denominator = s.Rates.UnmatchedMirror, "mirror volume"
	default:
		return measure.NotApplicable(), errors.Configf("stats", "unknown rate %q", kind)
	}
	if !m.Applicable() {
		return m, errors.NewUndefinedMetricError(string(kind)+" rate", denominator)
	}
	return m, nil
}

// Assertivity returns the assertivity of a field under a strategy.
func (s *Snapshot) Assertivity(attribute, strategy string) (measure.Measure, error) {
	for _, fa := range s.FieldAssertivity {
		if fa.Attribute != attribute {
			continue
		}
		for _, sa := range fa.Strategies {
			if sa.Strategy == strategy {
				return sa.Assertivity, nil
			}
		}
		return measure.NotApplicable(), errors.Configf("stats", "field %q is not scored by %q", attribute, strategy)
	}
	return measure.NotApplicable(), errors.Configf("stats", "unknown field %q", attribute)
}

// Field returns the assertivity entry of an attribute.
func (s *Snapshot) Field(attribute string) (FieldAssertivity, bool) {
	for _, fa := range s.FieldAssertivity {
		if fa.Attribute == attribute {
			return fa, true
		}
	}
	return FieldAssertivity{}, false
}

// Subset returns the assertivity entries of the named attributes in the
// snapshot's order. A subset containing "*" selects every attribute.
func (s *Snapshot) Subset(attributes []string) []FieldAssertivity {
	want := make(map[string]bool, len(attributes))
	for _, a := range attributes {
		if a == constants.AllFields {
			return append([]FieldAssertivity(nil), s.FieldAssertivity...)
		}
		want[a] = true
	}
	var out []FieldAssertivity
	for _, fa := range s.FieldAssertivity {
		if want[fa.Attribute] {
			out = append(out, fa)
		}
	}
	return out
}
