package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes recorded by SubmissionsTotal.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	surveySubmissionTotal *prometheus.CounterVec
	surveyExportsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the survey service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "survey_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		surveySubmissionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Survey submissions by outcome.",
		}, []string{"outcome"})

		surveyExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_exports_total",
			Help: "Spreadsheet exports by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, surveySubmissionTotal, surveyExportsTotal)
	})
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

// SubmissionsTotal exposes the submission outcome counter.
func SubmissionsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return surveySubmissionTotal
}

// ExportsTotal exposes the export outcome counter.
func ExportsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return surveyExportsTotal
}

// MetricsHandler serves the default registry in the OpenMetrics format when the
// scraper asks for it.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
