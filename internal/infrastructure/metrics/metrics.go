package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prediction pipeline metrics, exposed on /metrics.
var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signspeak_predictions_total",
		Help: "Total prediction requests by outcome.",
	}, []string{"outcome"})

	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "signspeak_inference_duration_seconds",
		Help:    "Model inference latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})
)

// Outcome label values for PredictionsTotal.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeInferenceError = "inference_error"
)
