package analysis

import (
	"slices"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/reconcile"
	"github.com/agentstation/mirror/pkg/schema"
	"github.com/agentstation/mirror/pkg/score"
)

// DivergenceOption configures InspectDivergence.
type DivergenceOption func(*inspection)

type inspection struct {
	strategy string
	hideKeys bool
	extra    []string
	registry *score.Registry
}

// WithStrategy selects the score column that decides divergence.
// Aliases are accepted.
func WithStrategy(name string) DivergenceOption {
	return func(in *inspection) { in.strategy = name }
}

// HideKeys leaves the key columns out of the result.
func HideKeys() DivergenceOption {
	return func(in *inspection) { in.hideKeys = true }
}

// WithExtraFields adds raw map columns to the result, after the keys.
func WithExtraFields(fields ...string) DivergenceOption {
	return func(in *inspection) { in.extra = append(in.extra, fields...) }
}

// WithRegistry resolves strategy aliases against r instead of score.Default().
func WithRegistry(r *score.Registry) DivergenceOption {
	return func(in *inspection) { in.registry = r }
}

// InspectDivergence returns the matched rows whose score for field is
// below 1. The strategy defaults to exact-match when the field uses it,
// otherwise to the field's first strategy. The result holds the keys,
// any extra fields, the field's ground and mirror values and all of its
// score columns.
func InspectDivergence(m *reconcile.Map, field string, opts ...DivergenceOption) (*reconcile.View, error) {
	in := &inspection{}
	for _, opt := range opts {
		opt(in)
	}
	if in.registry == nil {
		in.registry = score.Default()
	}

	cl := m.Classification()
	if !cl.HasAttribute(field) {
		return nil, errors.Configf("inspector", "unknown field %q", field)
	}
	strategies := cl.Strategies(field)

	strategy := in.strategy
	switch {
	case strategy == "" && slices.Contains(strategies, constants.DefaultStrategy):
		strategy = constants.DefaultStrategy
	case strategy == "":
		strategy = strategies[0]
	default:
		if canonical, err := in.registry.Resolve(strategy); err == nil {
			strategy = canonical
		}
	}
	if !slices.Contains(strategies, strategy) {
		return nil, errors.Configf("inspector", "field %q is not scored by %q", field, strategy)
	}

	raw := m.Raw()
	status, err := raw.Index(constants.StatusColumn)
	if err != nil {
		return nil, err
	}
	decisive, err := raw.Index(schema.ScoreColumn(field, strategy))
	if err != nil {
		return nil, errors.NewConfigError("inspector", "missing score column", err)
	}

	var names []string
	add := func(n string) {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	if !in.hideKeys {
		for _, k := range cl.Keys {
			add(k)
		}
	}
	for _, f := range in.extra {
		if !raw.Has(f) {
			return nil, errors.Configf("inspector", "unknown extra field %q", f)
		}
		add(f)
	}
	add(schema.GroundColumn(field))
	add(schema.MirrorColumn(field))
	for _, s := range strategies {
		add(schema.ScoreColumn(field, s))
	}

	return raw.Select(func(i int) bool {
		if raw.Cell(i, status) != reconcile.StatusBoth {
			return false
		}
		v, _ := raw.Cell(i, decisive).(float64)
		return v < constants.PerfectScore
	}, names...)
}
