// Package metrics exposes the prometheus counters and histograms tracking
// per-stage latency and error rates of the narration pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "narration_requests_active",
		Help: "Currently in-flight synthesis requests",
	})

	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "narration_requests_total",
		Help: "Total synthesis requests processed",
	})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "narration_stage_duration_seconds",
		Help:    "Per-stage latency within one synthesis request",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"stage"})

	E2EDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "narration_e2e_duration_seconds",
		Help:    "End-to-end latency from request acceptance to final WAV bytes",
		Buckets: []float64{0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 20.0, 40.0},
	})

	ChunksSynthesized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "narration_chunks_synthesized_total",
		Help: "Total chunks successfully synthesized",
	})

	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "narration_errors_total",
		Help: "Error counts by stage and error type",
	}, []string{"stage", "error_type"})

	PostprocessFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "narration_postprocess_fallbacks_total",
		Help: "Times the ffmpeg filter chain failed and basic normalization ran instead",
	})

	EmotionalModelRouted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "narration_emotional_model_routed_total",
		Help: "Chunks routed to the multi-speaker emotional model",
	})
)
