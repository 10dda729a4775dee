package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	SeededRowsTotal        *prometheus.CounterVec
	CustomerSavesTotal     *prometheus.CounterVec
	AccessDeniedTotal      *prometheus.CounterVec
	NewsletterDigestsTotal *prometheus.CounterVec
	NewsletterDeliveries   *prometheus.CounterVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_store_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_store_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_store_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		SeededRowsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_store_seeded_rows_total",
				Help: "Total number of fixture rows inserted by the seeder.",
			},
			[]string{"collection"},
		),
		CustomerSavesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_store_customer_saves_total",
				Help: "Total number of successful customer saves.",
			},
			[]string{"outcome"},
		),
		AccessDeniedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_store_access_denied_total",
				Help: "Total number of requests rejected by the role guard.",
			},
			[]string{"operation"},
		),
		NewsletterDigestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_store_newsletter_digests_total",
				Help: "Total number of newsletter digest publications.",
			},
			[]string{"status"},
		),
		NewsletterDeliveries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_store_newsletter_deliveries_total",
				Help: "Total number of newsletter digest messages consumed by the notifier.",
			},
			[]string{"outcome"},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordSeededRows(collection string, rows int) {
	Business.SeededRowsTotal.WithLabelValues(collection).Add(float64(rows))
}

func RecordCustomerSaved(outcome string) {
	Business.CustomerSavesTotal.WithLabelValues(outcome).Inc()
}

func RecordAccessDenied(operation string) {
	Business.AccessDeniedTotal.WithLabelValues(operation).Inc()
}

func RecordNewsletterDigest(status string) {
	Business.NewsletterDigestsTotal.WithLabelValues(status).Inc()
}

func RecordNewsletterDelivery(outcome string) {
	Business.NewsletterDeliveries.WithLabelValues(outcome).Inc()
}
