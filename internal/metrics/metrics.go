// Package metrics provides Prometheus metrics for the site.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "inkwell"

// Contact form outcomes.
const (
	ContactAccepted    = "accepted"
	ContactInvalid     = "invalid"
	ContactSpam        = "spam"
	ContactRateLimited = "rate_limited"
	ContactFailed      = "error"
)

var (
	// HTTPRequestsTotal counts served requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration measures request handling time.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// ContentSkippedTotal counts content files left out of a load.
	ContentSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_skipped_total",
			Help:      "Total number of content files skipped because of errors",
		},
		[]string{"kind"},
	)

	// ContentRecords is the record count of the latest load.
	ContentRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "content_records",
			Help:      "Number of records returned by the latest content load",
		},
		[]string{"kind"},
	)

	// ContactSubmissionsTotal counts contact form posts by outcome.
	ContactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Total number of contact form submissions",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records one served request. An empty route means no
// pattern matched.
func RecordRequest(route, method string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
}

// RecordContentLoad records the outcome of one content load.
func RecordContentLoad(kind string, records int) {
	ContentRecords.WithLabelValues(kind).Set(float64(records))
}

// RecordContentSkip records one skipped content file.
func RecordContentSkip(kind string) {
	ContentSkippedTotal.WithLabelValues(kind).Inc()
}

// RecordContact records one contact form outcome.
func RecordContact(outcome string) {
	ContactSubmissionsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
