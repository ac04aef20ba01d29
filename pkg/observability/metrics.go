// Package observability exposes engine lifecycle events as Prometheus
// metrics. The collectors attach through domain.LifecycleHooks, so the
// engine core stays free of any metrics dependency.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

// Metrics bundles the engine's Prometheus collectors.
type Metrics struct {
	storePatches   *prometheus.CounterVec
	registryMisses *prometheus.CounterVec
	trackDuration  *prometheus.HistogramVec
	trackErrors    *prometheus.CounterVec
	activations    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid global state.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		storePatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "store_patches_total",
			Help:      "Store patches applied, labeled by signal key.",
		}, []string{"key"}),
		registryMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "registry_misses_total",
			Help:      "Lookups of unregistered IDs, labeled by registry.",
		}, []string{"registry"}),
		trackDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vitrine",
			Name:      "timeline_track_duration_seconds",
			Help:      "Timeline track execution duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"timeline"}),
		trackErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "timeline_track_errors_total",
			Help:      "Timeline tracks that finished with an error.",
		}, []string{"timeline"}),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "experience_activations_total",
			Help:      "Experience activations, labeled by experience ID.",
		}, []string{"experience"}),
	}

	reg.MustRegister(m.storePatches, m.registryMisses, m.trackDuration, m.trackErrors, m.activations)
	return m
}

// Hooks returns lifecycle hooks feeding these collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStorePatch: func(ev domain.PatchEvent) {
			for _, key := range ev.Keys {
				m.storePatches.WithLabelValues(key).Inc()
			}
		},
		OnRegistryMiss: func(registry, _ string) {
			m.registryMisses.WithLabelValues(registry).Inc()
		},
		OnTrackDone: func(ev domain.TrackEvent) {
			m.trackDuration.WithLabelValues(ev.TimelineID).Observe(ev.Duration.Seconds())
			if ev.Err != nil {
				m.trackErrors.WithLabelValues(ev.TimelineID).Inc()
			}
		},
		OnActivate: func(experienceID string) {
			m.activations.WithLabelValues(experienceID).Inc()
		},
	}
}
