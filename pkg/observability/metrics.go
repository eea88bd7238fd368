package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	clipLoads     *prometheus.CounterVec
	clipLoadTime  *prometheus.HistogramVec
	clipStarts    *prometheus.CounterVec
	fadeFallbacks prometheus.Counter
	sequences     *prometheus.CounterVec
	modeChanges   *prometheus.CounterVec
	hits          prometheus.Counter
	timerFires    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		clipLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "puppet_clip_loads_total",
				Help: "Clip loads performed by the cache, by result",
			},
			[]string{"clip", "result"},
		),
		clipLoadTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "puppet_clip_load_duration_seconds",
				Help: "Duration of clip loads",
			},
			[]string{"clip"},
		),
		clipStarts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "puppet_clip_starts_total",
				Help: "Clips installed on the playback channel",
			},
			[]string{"clip"},
		),
		fadeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puppet_fade_fallbacks_total",
			Help: "Cross-fades that degraded to a hard cut",
		}),
		sequences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "puppet_sequences_total",
				Help: "Playback requests by outcome",
			},
			[]string{"outcome"},
		),
		modeChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "puppet_mode_changes_total",
				Help: "Interaction mode transitions by target mode",
			},
			[]string{"to"},
		),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puppet_hits_total",
			Help: "Accepted hits",
		}),
		timerFires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "puppet_timer_fires_total",
				Help: "Inactivity timer expiries",
			},
			[]string{"timer", "accepted"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.clipLoads, m.clipLoadTime, m.clipStarts, m.fadeFallbacks,
		m.sequences, m.modeChanges, m.hits, m.timerFires,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClipLoad: func(_ context.Context, e *domain.ClipEvent) {
			result := "ok"
			if e.Err != "" {
				result = "error"
			}
			m.clipLoads.WithLabelValues(string(e.Clip), result).Inc()
			m.clipLoadTime.WithLabelValues(string(e.Clip)).Observe(e.Duration.Seconds())
		},
		OnClipStart: func(_ context.Context, e *domain.ClipEvent) {
			m.clipStarts.WithLabelValues(string(e.Clip)).Inc()
		},
		OnFadeFallback: func(context.Context, *domain.ClipEvent) {
			m.fadeFallbacks.Inc()
		},
		OnSequenceStart: func(context.Context, *domain.SequenceEvent) {
			m.sequences.WithLabelValues("started").Inc()
		},
		OnSequenceComplete: func(context.Context, *domain.SequenceEvent) {
			m.sequences.WithLabelValues("completed").Inc()
		},
		OnSequencePreempt: func(context.Context, *domain.SequenceEvent) {
			m.sequences.WithLabelValues("preempted").Inc()
		},
		OnModeChange: func(_ context.Context, e *domain.ModeEvent) {
			m.modeChanges.WithLabelValues(e.To.String()).Inc()
		},
		OnHit: func(context.Context, *domain.HitEvent) {
			m.hits.Inc()
		},
		OnTimerFire: func(_ context.Context, e *domain.TimerEvent) {
			m.timerFires.WithLabelValues(e.Timer, strconv.FormatBool(e.Accepted)).Inc()
		},
	}
}
