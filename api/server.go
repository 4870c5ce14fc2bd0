// Package api is the HTTP surface of the service: one lookup route
// plus small operational endpoints. All request handling is delegated
// to the resolver, this package only maps its errors to status codes.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/9seconds/whereabouts/geodb"
	"github.com/9seconds/whereabouts/metrics"
	"github.com/9seconds/whereabouts/resolver"
)

// Resolver answers a single IP query. Implemented by
// resolver.Resolver.
type Resolver interface {
	Resolve(ipString string, rawMode bool) (*resolver.Response, error)
}

// InfoSource describes the opened databases. Implemented by
// geodb.Reader.
type InfoSource interface {
	Info() (city, asn geodb.DatabaseInfo)
}

// MetaInfo reports a size of the country metadata table. Implemented
// by countrymeta.Table.
type MetaInfo interface {
	Len() int
}

type handler struct {
	resolver Resolver
	geo      InfoSource
	meta     MetaInfo
}

func MakeServer(res Resolver, geo InfoSource, meta MetaInfo) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.SetHeader("Content-Type", "application/json"))

	h := handler{
		resolver: res,
		geo:      geo,
		meta:     meta,
	}

	router.With(observeMetrics("self")).Get("/", h.selfLookupIP)
	router.With(observeMetrics("lookup")).Get("/ip/{address}", h.lookupIP)
	router.With(observeMetrics("info")).Get("/info", h.getInfo)
	router.Method("GET", "/metrics", metrics.Handler())

	return router
}

func abort(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) // nolint: errcheck
}

func boolFlag(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	}

	return false
}
