// Package score provides the scoring strategies that rate how faithfully
// a mirror value reproduces its ground value, and the registry through
// which the reconciler looks them up by name.
package score

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/dataset"
)

// Strategy scores a ground value against a mirror value.
type Strategy interface {
	// Name returns the identifier used in scoring assignments
	Name() string

	// Description returns a human-readable description
	Description() string

	// Score returns a similarity in [0,1]
	Score(ground, mirror dataset.Value) float64
}

// Strategy names
const (
	ExactMatch       = constants.DefaultStrategy
	SimilarityRatio  = "similarity-ratio"
	CaseInsensitive  = "case-insensitive"
	NumericTolerance = "numeric-tolerance"
)

// Func adapts a plain function to Strategy.
type Func func(ground, mirror dataset.Value) float64

// baseStrategy provides common strategy functionality
type baseStrategy struct {
	name        string
	description string
	fn          Func
}

// Name returns the strategy name
func (s *baseStrategy) Name() string {
	return s.name
}

// Description returns a human-readable description
func (s *baseStrategy) Description() string {
	return s.description
}

// Score applies the strategy and clamps the result to [0,1].
func (s *baseStrategy) Score(ground, mirror dataset.Value) float64 {
	return clamp(s.fn(ground, mirror))
}

// New creates a strategy from a scoring function.
func New(name, description string, fn Func) Strategy {
	return &baseStrategy{name: name, description: description, fn: fn}
}

// NewExactMatch scores 1 for equal values and 0 otherwise. Null equals null.
func NewExactMatch() Strategy {
	return New(ExactMatch, "1 when the values are equal, 0 otherwise", exactMatch)
}

// NewSimilarityRatio scores the sequence-matcher ratio 2*M/T of the
// canonical strings of both values.
func NewSimilarityRatio() Strategy {
	return New(SimilarityRatio, "Sequence-matcher similarity of the values' text, 2*M/T", similarityRatio)
}

// NewCaseInsensitive scores 1 when the case-folded, trimmed texts match.
func NewCaseInsensitive() Strategy {
	return New(CaseInsensitive, "1 when the values' text matches ignoring case and surrounding space", caseInsensitive)
}

// NewNumericTolerance scores numbers by relative difference,
// 1 - min(1, |g-m| / max(|g|,|m|)). Non-numeric values fall back to exact match.
func NewNumericTolerance() Strategy {
	return New(NumericTolerance, "1 minus the relative difference of numeric values", numericTolerance)
}

func exactMatch(g, m dataset.Value) float64 {
	if dataset.Equal(g, m) {
		return constants.PerfectScore
	}
	return 0
}

func similarityRatio(g, m dataset.Value) float64 {
	a, b := dataset.String(g), dataset.String(m)
	if a == b {
		return constants.PerfectScore
	}
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// runes splits s into one element per code point.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func caseInsensitive(g, m dataset.Value) float64 {
	if g == nil || m == nil {
		return exactMatch(g, m)
	}
	fold := cases.Fold()
	a := fold.String(strings.TrimSpace(dataset.String(g)))
	b := fold.String(strings.TrimSpace(dataset.String(m)))
	if a == b {
		return constants.PerfectScore
	}
	return 0
}

func numericTolerance(g, m dataset.Value) float64 {
	a, okA := dataset.Float(g)
	b, okB := dataset.Float(m)
	if !okA || !okB {
		return exactMatch(g, m)
	}
	if a == b {
		return constants.PerfectScore
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return 1 - math.Min(1, math.Abs(a-b)/scale)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
