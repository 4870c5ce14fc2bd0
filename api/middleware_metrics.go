package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/9seconds/whereabouts/metrics"
)

// observeMetrics records a request counter and a duration histogram
// under a fixed route label. The label is static to keep the metric
// cardinality independent from request paths.
func observeMetrics(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			metrics.ObserveRequest(route, ww.Status(), time.Since(start))
		})
	}
}
