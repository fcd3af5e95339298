package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/observability"
	"github.com/aretw0/gambit/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter returns the value of the series of name whose labels include want.
func counter(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			if h := m.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics_Game(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	g, err := runner.New(runner.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	ctx := context.Background()
	_, err = g.Start(ctx)
	require.NoError(t, err)
	for _, sq := range []string{"e4", "e2", "e4"} {
		_, err := g.Click(ctx, sq)
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, counter(t, reg, "gambit_transitions_total", map[string]string{"from": "OFF", "to": "WHITE_PLAYS", "event": "START"}))
	assert.Equal(t, 1.0, counter(t, reg, "gambit_state_entries_total", map[string]string{"state": "WHITE_TURN"}))
	assert.Equal(t, 1.0, counter(t, reg, "gambit_unmatched_events_total", map[string]string{"state": "WHITE_PLAYS", "event": "CLICKED"}))
	assert.Equal(t, 1.0, counter(t, reg, "gambit_commands_total", map[string]string{"kind": "move_piece", "result": "ok"}))
	assert.Equal(t, 3.0, counter(t, reg, "gambit_commands_total", map[string]string{"kind": "render", "result": "ok"}))
	assert.Equal(t, 2.0, counter(t, reg, "gambit_dispatch_duration_seconds", map[string]string{"event": "CLICKED"}))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	var calls []string
	hook := func(name string) domain.LifecycleHooks {
		return domain.LifecycleHooks{
			OnTransition: func(context.Context, *domain.TransitionEvent) { calls = append(calls, name) },
			OnNoMatch:    func(context.Context, string, domain.Event) { calls = append(calls, name+"!") },
		}
	}
	h := observability.Combine(hook("a"), domain.LifecycleHooks{}, hook("b"))
	h.OnTransition(context.Background(), &domain.TransitionEvent{})
	h.OnNoMatch(context.Background(), "s", domain.Event{})

	assert.Equal(t, []string{"a", "b", "a!", "b!"}, calls)
	assert.Nil(t, h.OnCommand)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := observability.LoggingHooks(logger)

	h.OnTransition(context.Background(), &domain.TransitionEvent{From: "OFF", To: "ON", Event: "go"})
	h.OnCommand(context.Background(), &domain.CommandEvent{Kind: "render", Err: errors.New("boom")})

	assert.Contains(t, buf.String(), "from=OFF to=ON event=go")
	assert.Contains(t, buf.String(), "level=WARN msg=\"command failed\" kind=render err=boom")
}
