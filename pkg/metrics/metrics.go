package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Analysis pipeline metrics
	AnalysisRunsTotal   *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	AnalysisInProgress  prometheus.Gauge
	RateSamplesComputed *prometheus.CounterVec
	PostsFailed         *prometheus.CounterVec
	FallbacksTotal      *prometheus.CounterVec

	// External API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Dashboard metrics
	InsightsGenerated *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		AnalysisRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analysis_runs_total",
				Help: "Total number of analysis pipeline runs",
			},
			[]string{"status", "source"},
		),

		AnalysisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analysis_duration_seconds",
				Help:    "Analysis pipeline run duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"source"},
		),

		AnalysisInProgress: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "analysis_runs_in_progress",
				Help: "Number of analysis runs currently in progress",
			},
		),

		RateSamplesComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_samples_computed_total",
				Help: "Total number of monthly rate samples computed",
			},
			[]string{"platform", "metric"},
		),

		PostsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posts_failed_total",
				Help: "Total number of posts skipped during transformation",
			},
			[]string{"error_type"},
		),

		FallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fallbacks_total",
				Help: "Total number of data source fallbacks",
			},
			[]string{"tier"},
		),

		ExternalAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "status"},
		),

		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		ExternalAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "error_type"},
		),

		InsightsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_generated_total",
				Help: "Total number of dashboard insights generated",
			},
			[]string{"kind"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Analysis run metrics
func (m *Metrics) RecordAnalysisRun(status, source string, duration time.Duration) {
	m.AnalysisRunsTotal.WithLabelValues(status, source).Inc()
	m.AnalysisDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// Rate sample metrics
func (m *Metrics) RecordRateSamples(platform, metric string, count int) {
	m.RateSamplesComputed.WithLabelValues(platform, metric).Add(float64(count))
}

// Post transformation failure metrics
func (m *Metrics) RecordPostFailure(errorType string) {
	m.PostsFailed.WithLabelValues(errorType).Inc()
}

// Data source fallback metrics
func (m *Metrics) RecordFallback(tier string) {
	m.FallbacksTotal.WithLabelValues(tier).Inc()
}

// External API call metrics
func (m *Metrics) RecordExternalAPICall(api, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api).Observe(duration.Seconds())
}

// External API failure metrics
func (m *Metrics) RecordExternalAPIFailure(api, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(api, errorType).Inc()
}

// Insight generation metrics
func (m *Metrics) RecordInsight(kind string) {
	m.InsightsGenerated.WithLabelValues(kind).Inc()
}

// Analysis in progress counter
func (m *Metrics) IncAnalysisInProgress() {
	m.AnalysisInProgress.Inc()
}

// Analysis in progress counter
func (m *Metrics) DecAnalysisInProgress() {
	m.AnalysisInProgress.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
