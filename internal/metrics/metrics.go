// Package metrics exports comparison statistics as Prometheus gauges so
// scheduled runs can be scraped through the node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agentstation/mirror/pkg/errors"
	"github.com/agentstation/mirror/pkg/reconcile"
	"github.com/agentstation/mirror/pkg/stats"
)

// Recorder holds the gauges of one process on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	volume      *prometheus.GaugeVec
	keyMatching *prometheus.GaugeVec
	assertivity *prometheus.GaugeVec
	duration    *prometheus.GaugeVec
}

// New creates a recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		volume: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mirror_volume_records",
			Help: "Records per input dataset",
		}, []string{"mirror", "side"}),
		keyMatching: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mirror_key_matching_records",
			Help: "Reconciled records by key matching status",
		}, []string{"mirror", "status"}),
		assertivity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mirror_field_assertivity_percent",
			Help: "Mean score of matched records per field and strategy",
		}, []string{"mirror", "attribute", "strategy"}),
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mirror_build_duration_seconds",
			Help: "Time spent building the reconciliation map",
		}, []string{"mirror"}),
	}
}

// Registry returns the gatherer holding the recorded gauges.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Record sets the gauges of one mirror. Assertivity that is not
// applicable is left unset.
func (r *Recorder) Record(label string, s *stats.Snapshot, md reconcile.Metadata) {
	r.volume.WithLabelValues(label, "ground").Set(float64(s.Volume.Ground))
	r.volume.WithLabelValues(label, "mirror").Set(float64(s.Volume.Mirror))

	r.keyMatching.WithLabelValues(label, string(reconcile.StatusBoth)).Set(float64(s.KeyMatching.Matched))
	r.keyMatching.WithLabelValues(label, string(reconcile.StatusGroundOnly)).Set(float64(s.KeyMatching.UnmatchedGround))
	r.keyMatching.WithLabelValues(label, string(reconcile.StatusMirrorOnly)).Set(float64(s.KeyMatching.UnmatchedMirror))

	for _, fa := range s.FieldAssertivity {
		for _, sa := range fa.Strategies {
			if v, ok := sa.Assertivity.Get(); ok {
				r.assertivity.WithLabelValues(label, fa.Attribute, sa.Strategy).Set(v)
			}
		}
	}

	r.duration.WithLabelValues(label).Set(md.Duration.Seconds())
}

// WriteTextfile writes the registry in the text exposition format,
// atomically replacing path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
