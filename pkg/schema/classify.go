package schema

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/logging"
	"github.com/agentstation/mirror/pkg/score"
)

// Assignment maps an attribute to the ordered strategies that score it.
type Assignment map[string][]string

// Classification is the effective layout of a ground/mirror pair.
// Columns, Keys and Attributes follow the mirror's column order.
type Classification struct {
	Columns    []string
	Keys       []string
	Attributes []string
	// Scoring holds canonical strategy names for every attribute.
	Scoring map[string][]string
	// Ignored lists mirror columns absent from the ground.
	Ignored []string
}

// Strategies returns the strategies assigned to an attribute.
func (c *Classification) Strategies(attribute string) []string {
	return append([]string(nil), c.Scoring[attribute]...)
}

// IsKey reports whether name is an effective key.
func (c *Classification) IsKey(name string) bool {
	for _, k := range c.Keys {
		if k == name {
			return true
		}
	}
	return false
}

// HasAttribute reports whether name is an effective attribute.
func (c *Classification) HasAttribute(name string) bool {
	_, ok := c.Scoring[name]
	return ok
}

// ScoreColumns lists attribute:strategy names in attribute order, then
// strategy order.
func (c *Classification) ScoreColumns() []string {
	var out []string
	for _, a := range c.Attributes {
		for _, s := range c.Scoring[a] {
			out = append(out, ScoreColumn(a, s))
		}
	}
	return out
}

// Option configures Classify.
type Option func(*classifier)

type classifier struct {
	registry *score.Registry
	logger   *zerolog.Logger
}

// WithRegistry resolves strategies against r instead of score.Default().
func WithRegistry(r *score.Registry) Option {
	return func(c *classifier) { c.registry = r }
}

// WithLogger sets the logger that records dropped columns and entries.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *classifier) { c.logger = l }
}

// Classify intersects the mirror columns with the reference and
// validates the scoring assignment.
//
// Mirror columns unknown to the ground are ignored. Assignment entries for
// attributes present on one side only are dropped. Every other problem is
// a configuration error: no effective key, a key named like a generated
// <field>_ground or <field>_mirror column, an entry naming a key or a
// column neither side has, and an empty, unknown or repeated strategy.
func Classify(ref *Reference, candidate []string, assignment Assignment, opts ...Option) (*Classification, error) {
	c := &classifier{}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = score.Default()
	}
	log := logging.OrNop(c.logger)

	if ref == nil {
		return nil, errors.Configf("classifier", "ground reference is required")
	}

	cl := &Classification{Scoring: make(map[string][]string)}
	inCandidate := make(map[string]bool, len(candidate))
	for _, col := range candidate {
		inCandidate[col] = true
		switch {
		case !ref.HasColumn(col):
			cl.Ignored = append(cl.Ignored, col)
		case ref.IsKey(col):
			cl.Columns = append(cl.Columns, col)
			cl.Keys = append(cl.Keys, col)
		default:
			cl.Columns = append(cl.Columns, col)
			cl.Attributes = append(cl.Attributes, col)
		}
	}
	if len(cl.Ignored) > 0 {
		log.Debug().Strs("columns", cl.Ignored).Msg("ignoring mirror columns absent from ground")
	}
	if len(cl.Keys) == 0 {
		return nil, errors.Configf("classifier",
			"mirror shares no key column with ground keys %s", describe(ref.Keys()))
	}

	effective := make(map[string]bool, len(cl.Attributes))
	for _, a := range cl.Attributes {
		effective[a] = true
		for _, generated := range []string{GroundColumn(a), MirrorColumn(a)} {
			if cl.IsKey(generated) {
				return nil, errors.Configf("classifier",
					"key %q collides with the map column generated for field %q", generated, a)
			}
		}
	}

	names := make([]string, 0, len(assignment))
	for a := range assignment {
		names = append(names, a)
	}
	sort.Strings(names)

	for _, attr := range names {
		switch {
		case ref.IsKey(attr):
			return nil, errors.Configf("classifier", "key %q cannot be scored", attr)
		case !ref.HasColumn(attr) && !inCandidate[attr]:
			return nil, errors.Configf("classifier", "unknown field %q in scoring assignment", attr)
		case !effective[attr]:
			log.Debug().Str("attribute", attr).Msg("dropping scoring entry for one-sided attribute")
			continue
		}

		strategies, err := c.resolve(attr, assignment[attr])
		if err != nil {
			return nil, err
		}
		cl.Scoring[attr] = strategies
	}

	for _, a := range cl.Attributes {
		if _, ok := cl.Scoring[a]; !ok {
			cl.Scoring[a] = []string{constants.DefaultStrategy}
		}
	}
	return cl, nil
}

func (c *classifier) resolve(attr string, strategies []string) ([]string, error) {
	if len(strategies) == 0 {
		return nil, errors.Configf("classifier", "field %q has an empty strategy list", attr)
	}
	out := make([]string, 0, len(strategies))
	seen := make(map[string]bool, len(strategies))
	for _, s := range strategies {
		name, err := c.registry.Resolve(s)
		if err != nil {
			return nil, errors.NewConfigError("classifier",
				"field "+attr+": unknown scoring strategy "+s, err)
		}
		if seen[name] {
			return nil, errors.Configf("classifier", "field %q lists strategy %q twice", attr, name)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}
