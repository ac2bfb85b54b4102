package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/edulab/stepwise/pkg/domain"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	TracesBuilt     *prometheus.CounterVec
	TraceSteps      prometheus.Histogram
	BuildDuration   prometheus.Histogram
	StepsTaken      *prometheus.CounterVec
	AutoPlayToggles prometheus.Counter
	ActiveSessions  prometheus.Gauge
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TracesBuilt: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepwise",
			Name:      "traces_built_total",
			Help:      "Traces built, by language tag.",
		}, []string{"language"}),
		TraceSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stepwise",
			Name:      "trace_steps",
			Help:      "Steps per built trace.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stepwise",
			Name:      "trace_build_duration_seconds",
			Help:      "Time spent building a trace.",
			Buckets:   prometheus.DefBuckets,
		}),
		StepsTaken: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepwise",
			Name:      "steps_taken_total",
			Help:      "Playback steps taken, by step type.",
		}, []string{"type"}),
		AutoPlayToggles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "stepwise",
			Name:      "auto_play_starts_total",
			Help:      "Times auto-play was started.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "stepwise",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
	}
}

// Hooks returns lifecycle hooks that feed these metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTraceBuilt: func(e domain.TraceEvent) {
			m.TracesBuilt.WithLabelValues(e.Language).Inc()
			m.TraceSteps.Observe(float64(e.Steps))
			m.BuildDuration.Observe(e.Elapsed.Seconds())
		},
		OnStep: func(e domain.StepEvent) {
			if e.Step != nil {
				m.StepsTaken.WithLabelValues(string(e.Step.Type)).Inc()
			}
		},
		OnPlayStateChange: func(playing bool) {
			if playing {
				m.AutoPlayToggles.Inc()
			}
		},
	}
}
