package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wte_dashboard_requests_total",
			Help: "Total requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wte_dashboard_request_duration_seconds",
			Help:    "Request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	AccessDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wte_dashboard_access_decisions_total",
			Help: "Module access decisions by role, module and outcome.",
		},
		[]string{"role", "module", "outcome"},
	)

	TelemetryAlerts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wte_dashboard_telemetry_alerts_total",
			Help: "Telemetry alerts raised by severity.",
		},
		[]string{"severity"},
	)

	TelemetrySamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wte_dashboard_telemetry_samples_total",
			Help: "Telemetry readings generated.",
		},
	)

	// Set by the maintenance job, not on every lookup.
	RoleCacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wte_dashboard_role_cache_entries",
			Help: "Roles currently held in the lookup cache.",
		},
	)

	RoleCacheHitRatio = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wte_dashboard_role_cache_hit_ratio",
			Help: "Share of role lookups answered from the cache since start.",
		},
	)

	AuditPendingEvents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wte_dashboard_audit_pending_events",
			Help: "Audit entries queued but not yet written.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCounter, RequestDuration, AccessDecisions, TelemetryAlerts, TelemetrySamples,
		RoleCacheEntries, RoleCacheHitRatio, AuditPendingEvents,
	)
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAccessDecision counts a single module gate outcome.
func RecordAccessDecision(role, module string, allowed bool) {
	outcome := "denied"
	if allowed {
		outcome = "allowed"
	}
	if role == "" {
		role = "none"
	}
	AccessDecisions.WithLabelValues(role, module, outcome).Inc()
}

// MetricsMiddleware counts requests and records latency per chi route pattern.
// Unmatched requests are labelled "unmatched" to bound cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		RequestCounter.WithLabelValues(route, r.Method, strconv.Itoa(rw.status)).Inc()
		RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
