package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WorkerProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_processed_total",
			Help: "Total number of chat messages ingested per tenant",
		},
		[]string{"tenant", "result"},
	)

	WorkerActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chat_workers_active",
			Help: "Number of active chat ingest workers per tenant",
		},
		[]string{"tenant"},
	)

	QueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chat_queue_depth",
			Help: "Current RabbitMQ chat queue depth per tenant",
		},
		[]string{"tenant"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Latency of calls to the zkey, booking and portal services",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation", "status"},
	)

	ContactMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_contact_matches_total",
			Help: "WhatsApp contacts by match kind when building tenant contact lists",
		},
		[]string{"match"},
	)
)

// Init registers metrics with Prometheus
func Init() {
	prometheus.MustRegister(
		WorkerProcessed,
		WorkerActive,
		QueueDepth,
		HTTPRequests,
		HTTPDuration,
		UpstreamDuration,
		ContactMatches,
	)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records request count and latency under the matched chi route
// pattern, so path parameters do not explode label cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveUpstream records one call to an external service.
func ObserveUpstream(service, operation string, status int, start time.Time) {
	UpstreamDuration.WithLabelValues(service, operation, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
