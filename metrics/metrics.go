// Package metrics provides Prometheus collectors for the arena service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arena"

var (
	// providerCallDuration is a histogram of content provider call duration.
	providerCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Duration of content provider API calls in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "op"},
	)

	// providerCallsTotal counts provider API calls by outcome.
	providerCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Total number of content provider API calls",
		},
		[]string{"provider", "op", "status"}, // status: success, error
	)

	// turnsTotal counts completed debate turns by side and outcome.
	turnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Total number of debate turn executions",
		},
		[]string{"side", "status"}, // status: success, dropped
	)

	// audienceReactionsTotal counts appended audience reactions.
	audienceReactionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audience_reactions_total",
			Help:      "Total number of audience reactions appended to transcripts",
		},
	)

	// audioChunksTotal counts audio queue activity.
	audioChunksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_chunks_total",
			Help:      "Total number of audio payloads by queue outcome",
		},
		[]string{"outcome"}, // outcome: enqueued, played, muted, failed
	)

	// sessionsActive gauges currently connected debate sessions.
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of currently active debate sessions",
		},
	)

	// guestLimitHitsTotal counts guest quota activations.
	guestLimitHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guest_limit_hits_total",
			Help:      "Total number of times the guest turn quota halted a session",
		},
	)
)

// Register registers all arena collectors with the given registerer.
// Call once at startup; prometheus.DefaultRegisterer is the usual target.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		providerCallDuration,
		providerCallsTotal,
		turnsTotal,
		audienceReactionsTotal,
		audioChunksTotal,
		sessionsActive,
		guestLimitHitsTotal,
	)
}

// ObserveProviderCall records one provider API call.
func ObserveProviderCall(provider, op string, d time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	providerCallDuration.WithLabelValues(provider, op).Observe(d.Seconds())
	providerCallsTotal.WithLabelValues(provider, op, status).Inc()
}

// TurnCompleted records a successfully finalized turn.
func TurnCompleted(side string) {
	turnsTotal.WithLabelValues(side, "success").Inc()
}

// TurnDropped records a turn that failed and was dropped.
func TurnDropped(side string) {
	turnsTotal.WithLabelValues(side, "dropped").Inc()
}

// AudienceReaction records one appended audience reaction.
func AudienceReaction() {
	audienceReactionsTotal.Inc()
}

// AudioChunk records audio queue activity; outcome is one of "enqueued",
// "played", "muted" or "failed".
func AudioChunk(outcome string) {
	audioChunksTotal.WithLabelValues(outcome).Inc()
}

// SessionStarted increments the active session gauge.
func SessionStarted() {
	sessionsActive.Inc()
}

// SessionEnded decrements the active session gauge.
func SessionEnded() {
	sessionsActive.Dec()
}

// ActiveSessions returns the live-session gauge collector.
func ActiveSessions() prometheus.Gauge {
	return sessionsActive
}

// GuestLimitHit records a guest quota activation.
func GuestLimitHit() {
	guestLimitHitsTotal.Inc()
}
