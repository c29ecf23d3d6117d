// Package metrics exposes Prometheus counters for capture and playback.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "keymacro"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	captured   *prometheus.CounterVec
	dispatched *prometheus.CounterVec
	failures   prometheus.Counter
	recordings prometheus.Counter
	playbacks  *prometheus.CounterVec
	passes     prometheus.Counter
	active     *prometheus.GaugeVec
}

// New creates the collectors and registers them, plus the Go runtime
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		captured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_captured_total",
			Help:      "Events appended to a log by a recording session.",
		}, []string{"category"}),
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "Events injected during playback.",
		}, []string{"category"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_failures_total",
			Help:      "Injection failures that aborted a playback.",
		}),
		recordings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recordings_total",
			Help:      "Completed recording sessions.",
		}),
		playbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playbacks_total",
			Help:      "Finished playback runs by outcome.",
		}, []string{"outcome"}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_passes_total",
			Help:      "Completed passes over an event log.",
		}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_macros",
			Help:      "Macros currently recording or playing.",
		}, []string{"state"}),
	}
	m.registry.MustRegister(
		m.captured, m.dispatched, m.failures, m.recordings,
		m.playbacks, m.passes, m.active,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) EventCaptured(category string) {
	if m == nil {
		return
	}
	m.captured.WithLabelValues(category).Inc()
}

func (m *Metrics) EventDispatched(category string) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(category).Inc()
}

func (m *Metrics) DispatchFailed() {
	if m == nil {
		return
	}
	m.failures.Inc()
}

func (m *Metrics) RecordingFinished() {
	if m == nil {
		return
	}
	m.recordings.Inc()
}

func (m *Metrics) PassCompleted() {
	if m == nil {
		return
	}
	m.passes.Inc()
}

// PlaybackFinished counts a run; outcome is "completed", "cancelled" or "failed".
func (m *Metrics) PlaybackFinished(outcome string) {
	if m == nil {
		return
	}
	m.playbacks.WithLabelValues(outcome).Inc()
}

// StateEntered and StateLeft track the active_macros gauge.
func (m *Metrics) StateEntered(state string) {
	if m == nil {
		return
	}
	m.active.WithLabelValues(state).Inc()
}

func (m *Metrics) StateLeft(state string) {
	if m == nil {
		return
	}
	m.active.WithLabelValues(state).Dec()
}
