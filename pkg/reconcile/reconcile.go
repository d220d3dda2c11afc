// Package reconcile aligns ground and mirror records by key, scores every
// attribute under its assigned strategies and materialises the result as
// an immutable reconciliation Map.
package reconcile

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/mirror/pkg/constants"
	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/logging"
	"github.com/agentstation/mirror/pkg/measure"
	"github.com/agentstation/mirror/pkg/schema"
	"github.com/agentstation/mirror/pkg/score"
)

// Reconciler joins one ground dataset with one mirror dataset.
type Reconciler struct {
	classification *schema.Classification
	ground         *dataset.Dataset
	mirror         *dataset.Dataset
	registry       *score.Registry
	logger         *zerolog.Logger
	concurrency    int

	// resolved layout
	groundKeys  []int
	mirrorKeys  []int
	groundAttrs []int
	mirrorAttrs []int
	scorers     []scorer
}

// scorer binds one score column to its strategy.
type scorer struct {
	attribute int
	column    int
	strategy  score.Strategy
}

// Option configures a Reconciler
type Option func(*Reconciler) error

// WithRegistry sets the registry strategies are looked up in.
func WithRegistry(r *score.Registry) Option {
	return func(rc *Reconciler) error {
		if r == nil {
			return errors.Configf("reconciler", "registry cannot be nil")
		}
		rc.registry = r
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(rc *Reconciler) error {
		rc.logger = l
		return nil
	}
}

// WithConcurrency scores up to n attributes in parallel once the join is
// complete. Values below 2 keep scoring sequential.
func WithConcurrency(n int) Option {
	return func(rc *Reconciler) error {
		if n < 0 {
			return errors.Configf("reconciler", "concurrency must not be negative, got %d", n)
		}
		if n > constants.MaxConcurrentScorers {
			n = constants.MaxConcurrentScorers
		}
		rc.concurrency = n
		return nil
	}
}

// New validates the classification against both datasets and resolves
// every assigned strategy.
func New(cl *schema.Classification, ground, mirror *dataset.Dataset, opts ...Option) (*Reconciler, error) {
	if cl == nil {
		return nil, errors.Configf("reconciler", "classification is required")
	}
	if ground == nil || mirror == nil {
		return nil, errors.Configf("reconciler", "both ground and mirror datasets are required")
	}
	if len(cl.Keys) == 0 {
		return nil, errors.Configf("reconciler", "no effective key columns")
	}

	rc := &Reconciler{
		classification: cl,
		ground:         ground,
		mirror:         mirror,
		concurrency:    1,
	}
	for _, opt := range opts {
		if err := opt(rc); err != nil {
			return nil, err
		}
	}
	if rc.registry == nil {
		rc.registry = score.Default()
	}
	rc.logger = logging.OrNop(rc.logger)

	var err error
	if rc.groundKeys, err = positions(ground, "ground", cl.Keys); err != nil {
		return nil, err
	}
	if rc.mirrorKeys, err = positions(mirror, "mirror", cl.Keys); err != nil {
		return nil, err
	}
	if rc.groundAttrs, err = positions(ground, "ground", cl.Attributes); err != nil {
		return nil, err
	}
	if rc.mirrorAttrs, err = positions(mirror, "mirror", cl.Attributes); err != nil {
		return nil, err
	}

	col := 0
	for a, attr := range cl.Attributes {
		strategies := cl.Scoring[attr]
		if len(strategies) == 0 {
			return nil, errors.Configf("reconciler", "field %q has no scoring strategy", attr)
		}
		for _, name := range strategies {
			s, err := rc.registry.Get(name)
			if err != nil {
				return nil, errors.NewConfigError("reconciler", "field "+attr, err)
			}
			rc.scorers = append(rc.scorers, scorer{attribute: a, column: col, strategy: s})
			col++
		}
	}
	return rc, nil
}

func positions(d *dataset.Dataset, side string, names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		j, ok := d.ColumnIndex(n)
		if !ok {
			return nil, errors.Configf("reconciler", "%s dataset has no column %q", side, n)
		}
		out[i] = j
	}
	return out, nil
}

// Build joins, scores and averages. The result is identical for identical
// inputs regardless of concurrency.
func (rc *Reconciler) Build(ctx context.Context) (*Map, error) {
	start := time.Now()

	rows, err := rc.join(ctx)
	if err != nil {
		return nil, err
	}
	if err := rc.score(ctx, rows); err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Status == StatusBoth && len(rows[i].Scores) > 0 {
			rows[i].Mean = measure.Mean(rows[i].Scores)
		} else {
			rows[i].Mean = measure.NotApplicable()
		}
	}

	m := newMap(rc.classification, rows)
	m.metadata = Metadata{
		StartTime:   start,
		EndTime:     time.Now(),
		Concurrency: rc.concurrency,
	}
	m.metadata.Duration = m.metadata.EndTime.Sub(start)

	rc.logger.Debug().
		Int("rows", len(rows)).
		Int("both", m.Count(StatusBoth)).
		Int("ground_only", m.Count(StatusGroundOnly)).
		Int("mirror_only", m.Count(StatusMirrorOnly)).
		Int("score_columns", len(rc.scorers)).
		Dur("duration", m.metadata.Duration).
		Msg("reconciliation complete")
	return m, nil
}

// join performs the outer join: ground records in order, each followed by
// its mirror matches in mirror order, then unmatched mirror records.
func (rc *Reconciler) join(ctx context.Context) ([]Row, error) {
	index := make(map[string][]int, rc.mirror.Len())
	for j := 0; j < rc.mirror.Len(); j++ {
		k := dataset.KeyOf(rc.mirror.Project(j, rc.mirrorKeys))
		index[k] = append(index[k], j)
	}

	width := len(rc.scorers)
	rows := make([]Row, 0, rc.ground.Len())
	matched := make([]bool, rc.mirror.Len())

	for i := 0; i < rc.ground.Len(); i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		keys := rc.ground.Project(i, rc.groundKeys)
		ground := rc.ground.Project(i, rc.groundAttrs)
		matches := index[dataset.KeyOf(keys)]
		if len(matches) == 0 {
			rows = append(rows, Row{
				Keys:   keys,
				Status: StatusGroundOnly,
				Ground: ground,
				Mirror: make([]dataset.Value, len(rc.mirrorAttrs)),
				Scores: make([]float64, width),
			})
			continue
		}
		for _, j := range matches {
			matched[j] = true
			rows = append(rows, Row{
				Keys:   append([]dataset.Value(nil), keys...),
				Status: StatusBoth,
				Ground: append([]dataset.Value(nil), ground...),
				Mirror: rc.mirror.Project(j, rc.mirrorAttrs),
				Scores: make([]float64, width),
			})
		}
	}
	for j := 0; j < rc.mirror.Len(); j++ {
		if matched[j] {
			continue
		}
		rows = append(rows, Row{
			Keys:   rc.mirror.Project(j, rc.mirrorKeys),
			Status: StatusMirrorOnly,
			Ground: make([]dataset.Value, len(rc.groundAttrs)),
			Mirror: rc.mirror.Project(j, rc.mirrorAttrs),
			Scores: make([]float64, width),
		})
	}
	return rows, nil
}

// score fills every score column. Each task owns one column so
// concurrent tasks never write the same cell.
func (rc *Reconciler) score(ctx context.Context, rows []Row) error {
	if rc.concurrency < 2 || len(rc.scorers) < 2 {
		for _, s := range rc.scorers {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.fill(rows)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rc.concurrency)
	for _, s := range rc.scorers {
		s := s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.fill(rows)
			return nil
		})
	}
	return g.Wait()
}

func (s scorer) fill(rows []Row) {
	for i := range rows {
		rows[i].Scores[s.column] = s.strategy.Score(rows[i].Ground[s.attribute], rows[i].Mirror[s.attribute])
	}
}
