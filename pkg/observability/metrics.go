package observability

import (
	"context"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "gambit"

// Metrics holds the Prometheus collectors fed by the lifecycle hooks.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Entries     *prometheus.CounterVec
	NoMatch     *prometheus.CounterVec
	Commands    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// Use prometheus.DefaultRegisterer to expose them through promhttp.Handler.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "transitions_total",
				Help:      "Total number of transitions taken",
			},
			[]string{"from", "to", "event"},
		),
		Entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "state_entries_total",
				Help:      "Total number of state entries, compound states included",
			},
			[]string{"state"},
		),
		NoMatch: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "unmatched_events_total",
				Help:      "Total number of events that matched no transition",
			},
			[]string{"state", "event"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "commands_total",
				Help:      "Total number of commands forwarded to the sink",
			},
			[]string{"kind", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Time from event arrival to commit",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
			[]string{"event"},
		),
	}

	for _, c := range []prometheus.Collector{m.Transitions, m.Entries, m.NoMatch, m.Commands, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks updating the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.From, e.To, e.Event).Inc()
			m.Duration.WithLabelValues(e.Event).Observe(e.Duration.Seconds())
		},
		OnStateEnter: func(_ context.Context, e *domain.StateEvent) {
			m.Entries.WithLabelValues(e.State).Inc()
		},
		OnNoMatch: func(_ context.Context, state string, ev domain.Event) {
			m.NoMatch.WithLabelValues(state, ev.Name).Inc()
		},
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.Commands.WithLabelValues(e.Kind, result).Inc()
		},
	}
}
