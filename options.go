package mirror

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/schema"
	"github.com/agentstation/mirror/pkg/score"
)

// Option configures a Ground or a Mirror. Options given to a Ground
// become the defaults of the mirrors it builds.
type Option func(*config) error

type config struct {
	scoring     schema.Assignment
	registry    *score.Registry
	concurrency int
	logger      *zerolog.Logger
	label       string
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// clone copies c so that options applied to the copy never leak back.
func (c config) clone() config {
	out := c
	out.scoring = make(schema.Assignment, len(c.scoring))
	for attr, strategies := range c.scoring {
		out.scoring[attr] = append([]string(nil), strategies...)
	}
	return out
}

// WithScoring sets the strategies of every listed attribute. Attributes
// left out are scored with exact-match.
func WithScoring(a schema.Assignment) Option {
	return func(c *config) error {
		if c.scoring == nil {
			c.scoring = make(schema.Assignment, len(a))
		}
		for attr, strategies := range a {
			c.scoring[attr] = append([]string(nil), strategies...)
		}
		return nil
	}
}

// WithStrategies assigns strategies to a single attribute.
func WithStrategies(attribute string, strategies ...string) Option {
	return WithScoring(schema.Assignment{attribute: strategies})
}

// WithRegistry sets the registry strategies are resolved in.
func WithRegistry(r *score.Registry) Option {
	return func(c *config) error {
		if r == nil {
			return errors.Configf("mirror", "registry cannot be nil")
		}
		c.registry = r
		return nil
	}
}

// WithConcurrency scores up to n attributes in parallel.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return errors.Configf("mirror", "concurrency must not be negative, got %d", n)
		}
		c.concurrency = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithLabel names a mirror in logs, reports and metrics.
func WithLabel(label string) Option {
	return func(c *config) error {
		c.label = label
		return nil
	}
}
