// Package metrics registra las métricas Prometheus del servicio:
//   - http_request_total / http_request_duration_seconds / http_request_in_flight
//   - interaction_checks_total{outcome}: chequeos por paciente (success|failure)
//   - interactions_detected_total{severity}: interacciones detectadas en chequeos
//   - interaction_sweep_*: resultado del último barrido programado
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	InteractionChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_checks_total",
			Help: "Per-patient interaction checks by outcome",
		},
		[]string{"outcome"},
	)

	InteractionsDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_detected_total",
			Help: "Interactions detected by severity",
		},
		[]string{"severity"},
	)

	SweepPatients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_sweep_patients",
			Help: "Patients checked in the last interaction sweep",
		},
	)

	SweepFailed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_sweep_failed",
			Help: "Patients whose check failed in the last interaction sweep",
		},
	)

	SweepDetected = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "interaction_sweep_detected",
			Help: "Interactions detected in the last sweep by severity",
		},
		[]string{"severity"},
	)

	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interaction_sweep_duration_seconds",
			Help:    "Duration of interaction sweeps",
			Buckets: prometheus.DefBuckets,
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (clients seen since last cleanup)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(InteractionChecks)
	prometheus.MustRegister(InteractionsDetected)
	prometheus.MustRegister(SweepPatients)
	prometheus.MustRegister(SweepFailed)
	prometheus.MustRegister(SweepDetected)
	prometheus.MustRegister(SweepDuration)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
