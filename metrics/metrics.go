// Package metrics keeps Prometheus collectors for the service and the
// exposition handler mounted at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whereabouts_requests_total",
		Help: "Total number of HTTP requests by route and status code.",
	}, []string{"route", "code"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "whereabouts_request_duration_seconds",
		Help:    "Request duration in seconds by route.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"})

	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whereabouts_lookups_total",
		Help: "Database lookups by section (city, asn) and outcome (hit, miss).",
	}, []string{"section", "outcome"})

	ResponseCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whereabouts_response_cache_total",
		Help: "Resolved response cache hits and misses.",
	}, []string{"outcome"})

	ReverseDNSTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whereabouts_reverse_dns_total",
		Help: "Reverse DNS lookups by outcome (hit, miss, skip).",
	}, []string{"outcome"})

	PeeringDBTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whereabouts_peeringdb_total",
		Help: "PeeringDB website lookups by outcome (hit, miss).",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(ResponseCacheTotal)
	prometheus.MustRegister(ReverseDNSTotal)
	prometheus.MustRegister(PeeringDBTotal)
}

// ObserveRequest records a single handled HTTP request.
func ObserveRequest(route string, code int, duration time.Duration) {
	RequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler returns the Prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
