package mirror

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/mirror/pkg/analysis"
	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/logging"
	"github.com/agentstation/mirror/pkg/reconcile"
	"github.com/agentstation/mirror/pkg/schema"
	"github.com/agentstation/mirror/pkg/score"
	"github.com/agentstation/mirror/pkg/stats"
)

// Mirror is a candidate dataset reconciled against its ground. The map
// and statistics are computed when the Mirror is created.
type Mirror struct {
	ground         Reference
	dataset        *dataset.Dataset
	config         config
	logger         *zerolog.Logger
	classification *schema.Classification

	mu    sync.RWMutex
	m     *reconcile.Map
	stats *stats.Snapshot
}

// New classifies, reconciles and summarises a mirror dataset against
// ground. Configuration problems such as an empty effective key set or an
// unknown scoring strategy are reported here.
func New(ctx context.Context, ground Reference, ds *dataset.Dataset, opts ...Option) (*Mirror, error) {
	return newMirror(ctx, ground, ds, config{}, opts...)
}

func newMirror(ctx context.Context, ground Reference, ds *dataset.Dataset, base config, opts ...Option) (*Mirror, error) {
	if ground == nil {
		return nil, errors.Configf("mirror", "ground reference is required")
	}
	if ds == nil {
		return nil, errors.Configf("mirror", "mirror dataset is required")
	}

	cfg := base.clone()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	if cfg.registry == nil {
		cfg.registry = score.Default()
	}
	if cfg.label == "" {
		cfg.label = ds.Name()
	}

	logger := logging.OrNop(cfg.logger).With().Str("mirror", cfg.label).Logger()
	m := &Mirror{
		ground:  ground,
		dataset: ds,
		config:  cfg,
		logger:  &logger,
	}

	cl, err := schema.Classify(ground.Schema(), ds.Columns(), cfg.scoring,
		schema.WithRegistry(cfg.registry),
		schema.WithLogger(m.logger))
	if err != nil {
		return nil, err
	}
	m.classification = cl

	if err := m.Rebuild(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Rebuild recomputes the map and statistics from the stored inputs.
// The result is identical to the previous one.
func (m *Mirror) Rebuild(ctx context.Context) error {
	rc, err := reconcile.New(m.classification, m.ground.Dataset(), m.dataset,
		reconcile.WithRegistry(m.config.registry),
		reconcile.WithConcurrency(m.config.concurrency),
		reconcile.WithLogger(m.logger))
	if err != nil {
		return err
	}
	built, err := rc.Build(ctx)
	if err != nil {
		return errors.WrapResource("build", "mirror", m.config.label, err)
	}
	snapshot := stats.Compute(built, m.ground.Dataset().Len(), m.dataset.Len())

	m.mu.Lock()
	m.m = built
	m.stats = snapshot
	m.mu.Unlock()

	m.logger.Debug().
		Int("matched", snapshot.KeyMatching.Matched).
		Int("unmatched_ground", snapshot.KeyMatching.UnmatchedGround).
		Int("unmatched_mirror", snapshot.KeyMatching.UnmatchedMirror).
		Msg("mirror built")
	return nil
}

// Label returns the mirror's name.
func (m *Mirror) Label() string { return m.config.label }

// Ground returns the reference the mirror is compared against.
func (m *Mirror) Ground() Reference { return m.ground }

// Dataset returns the mirror records.
func (m *Mirror) Dataset() *dataset.Dataset { return m.dataset }

// Keys returns the effective key columns in mirror column order.
func (m *Mirror) Keys() []string { return append([]string(nil), m.classification.Keys...) }

// Attributes returns the effective attributes in mirror column order.
func (m *Mirror) Attributes() []string { return append([]string(nil), m.classification.Attributes...) }

// Columns returns the mirror columns shared with the ground.
func (m *Mirror) Columns() []string { return append([]string(nil), m.classification.Columns...) }

// Scoring returns the effective strategies of every attribute.
func (m *Mirror) Scoring() schema.Assignment {
	out := make(schema.Assignment, len(m.classification.Scoring))
	for attr, strategies := range m.classification.Scoring {
		out[attr] = append([]string(nil), strategies...)
	}
	return out
}

// Classification returns the effective layout. Callers must not modify it.
func (m *Mirror) Classification() *schema.Classification { return m.classification }

// Registry returns the registry strategies were resolved in.
func (m *Mirror) Registry() *score.Registry { return m.config.registry }

// Map returns the reconciliation map.
func (m *Mirror) Map() *reconcile.Map {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.m
}

// RawMap returns keys, _mean, _merge and every attribute's ground value,
// mirror value and scores.
func (m *Mirror) RawMap() *reconcile.View { return m.Map().Raw() }

// CompactMap returns keys, _mean, _merge and the score columns.
func (m *Mirror) CompactMap() *reconcile.View { return m.Map().Compact() }

// Stats returns the statistics snapshot.
func (m *Mirror) Stats() *stats.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// MapFieldErrorFrequency groups divergent matched rows by the fields
// they fail on.
func (m *Mirror) MapFieldErrorFrequency() *analysis.FrequencyTable {
	return analysis.ErrorFrequency(m.Map())
}

// InspectDivergenceOnField lists the matched rows that diverge on field.
func (m *Mirror) InspectDivergenceOnField(field string, opts ...analysis.DivergenceOption) (*reconcile.View, error) {
	opts = append([]analysis.DivergenceOption{analysis.WithRegistry(m.config.registry)}, opts...)
	return analysis.InspectDivergence(m.Map(), field, opts...)
}
