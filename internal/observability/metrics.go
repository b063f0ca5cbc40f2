package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	submissionEventsTotal *prometheus.CounterVec
	realtimeConnections   prometheus.Gauge
	realtimeEventsTotal   *prometheus.CounterVec
	realtimeDroppedTotal  prometheus.Counter
	uploadsTotal          *prometheus.CounterVec
	uploadsRejectedTotal  *prometheus.CounterVec
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used across the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		submissionEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_submission_events_total",
			Help: "Total number of submission store mutations by kind.",
		}, []string{"kind"})

		realtimeConnections = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "review_realtime_connections",
			Help: "Number of currently registered live viewers.",
		})

		realtimeEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_realtime_events_total",
			Help: "Total number of events broadcast to live viewers by type.",
		}, []string{"type"})

		realtimeDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "review_realtime_dropped_total",
			Help: "Total number of events dropped because a viewer could not keep up.",
		})

		uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_uploads_total",
			Help: "Total number of accepted file uploads by detected type.",
		}, []string{"type"})

		uploadsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_uploads_rejected_total",
			Help: "Total number of rejected file uploads by reason.",
		}, []string{"reason"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "review_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(
			submissionEventsTotal,
			realtimeConnections,
			realtimeEventsTotal,
			realtimeDroppedTotal,
			uploadsTotal,
			uploadsRejectedTotal,
			httpRequestsTotal,
			httpLatencySeconds,
		)
	})
}

// SubmissionEvents exposes the counter for store mutations.
func SubmissionEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionEventsTotal
}

// RealtimeConnections exposes the live viewer gauge.
func RealtimeConnections() prometheus.Gauge {
	RegisterMetrics()
	return realtimeConnections
}

// RealtimeEvents exposes the broadcast counter.
func RealtimeEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return realtimeEventsTotal
}

// RealtimeDropped exposes the slow-consumer drop counter.
func RealtimeDropped() prometheus.Counter {
	RegisterMetrics()
	return realtimeDroppedTotal
}

// Uploads exposes the accepted upload counter.
func Uploads() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadsTotal
}

// UploadsRejected exposes the rejected upload counter.
func UploadsRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadsRejectedTotal
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}
