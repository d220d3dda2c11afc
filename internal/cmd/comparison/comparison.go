// Package comparison holds the flags shared by the commands that build a
// mirror and the code turning them into one.
package comparison

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/agentstation/mirror"
	"github.com/agentstation/mirror/internal/metrics"
	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/logging"
	"github.com/agentstation/mirror/pkg/schema"
)

// Settings describe one comparison. Zero values fall back to the
// library defaults.
type Settings struct {
	Ground      string
	Mirror      string
	Keys        []string
	Score       []string
	Label       string
	Concurrency int
	MetricsFile string
}

// AddFlags binds the comparison flags to s. The current values of s
// become the flag defaults, so profile settings show up in --help.
func (s *Settings) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&s.Ground, "ground", s.Ground, "ground truth dataset (csv, tsv, json, yaml or sqlite://path?table=name)")
	f.StringVar(&s.Mirror, "mirror", s.Mirror, "dataset to compare against the ground truth")
	f.StringSliceVar(&s.Keys, "keys", s.Keys, "key columns identifying a record")
	f.StringArrayVar(&s.Score, "score", s.Score, "strategies scoring a field as field=strategy[,strategy] (repeatable)")
	f.StringVar(&s.Label, "label", s.Label, "mirror label (default mirror_1)")
	f.IntVar(&s.Concurrency, "concurrency", s.Concurrency, "fields scored in parallel")
	f.StringVar(&s.MetricsFile, "metrics-file", s.MetricsFile, "write Prometheus metrics to this textfile")
}

// Validate checks the settings that have no library default.
func (s Settings) Validate() error {
	if s.Ground == "" {
		return errors.NewValidationError("ground", nil, "a ground truth dataset is required (--ground)")
	}
	if s.Mirror == "" {
		return errors.NewValidationError("mirror", nil, "a mirror dataset is required (--mirror)")
	}
	return nil
}

// ParseScoring turns field=strategy[,strategy] entries into an
// assignment. Entries naming the same field accumulate.
func ParseScoring(entries []string) (schema.Assignment, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	a := make(schema.Assignment, len(entries))
	for _, entry := range entries {
		field, list, ok := strings.Cut(entry, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, errors.NewValidationError("score", entry, "expected field=strategy[,strategy]")
		}
		var strategies []string
		for _, name := range strings.Split(list, ",") {
			if name = strings.TrimSpace(name); name != "" {
				strategies = append(strategies, name)
			}
		}
		if len(strategies) == 0 {
			return nil, errors.NewValidationError("score", entry, fmt.Sprintf("no strategy given for field %q", field))
		}
		a[field] = append(a[field], strategies...)
	}
	return a, nil
}

// Run loads both datasets, attaches the mirror to the ground and
// reconciles it. When a metrics file is configured the statistics are
// written to it.
func Run(ctx context.Context, s Settings, logger *zerolog.Logger) (*mirror.Mirror, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ctx = logging.WithLogger(ctx, logging.OrNop(logger))
	ctx = logging.WithGround(ctx, s.Ground)
	ctx = logging.WithOperation(ctx, "compare")
	logger = logging.Ctx(ctx)
	assignment, err := ParseScoring(s.Score)
	if err != nil {
		return nil, err
	}

	ground, err := dataset.Load(ctx, s.Ground)
	if err != nil {
		return nil, errors.WrapResource("load", "ground", s.Ground, err)
	}
	candidate, err := dataset.Load(ctx, s.Mirror)
	if err != nil {
		return nil, errors.WrapResource("load", "mirror", s.Mirror, err)
	}

	g, err := mirror.NewGround(ground, s.Keys,
		mirror.WithLogger(logger),
		mirror.WithConcurrency(s.Concurrency),
	)
	if err != nil {
		return nil, err
	}

	var recorder *metrics.Recorder
	if s.MetricsFile != "" {
		recorder = metrics.New()
		g.OnMirrorBuilt(func(m *mirror.Mirror) {
			recorder.Record(m.Label(), m.Stats(), m.Map().Metadata())
		})
	}

	att, err := g.Attach(candidate, s.Label)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithMirror(ctx, att.Label)
	m, err := g.Mirror(ctx, att.Label, mirror.WithScoring(assignment))
	if err != nil {
		return nil, err
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(s.MetricsFile); err != nil {
			return nil, err
		}
		logging.Ctx(ctx).Debug().Str("path", s.MetricsFile).Msg("metrics written")
	}
	return m, nil
}
