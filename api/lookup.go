package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/9seconds/whereabouts/resolver"
)

func (h handler) lookupIP(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	rawMode := boolFlag(r.URL.Query().Get("raw"))

	h.resolveAndRespond(w, address, rawMode)
}

func (h handler) resolveAndRespond(w http.ResponseWriter, address string, rawMode bool) {
	resp, err := h.resolver.Resolve(address, rawMode)

	switch {
	case errors.Is(err, resolver.ErrInvalidIP):
		abort(w, http.StatusBadRequest, "invalid IP address")
	case errors.Is(err, resolver.ErrNotFound):
		abort(w, http.StatusNotFound, "IP address is not found")
	case err != nil:
		log.WithFields(log.Fields{
			"ip": address,
		}).Errorf("Cannot resolve IP address: %s", err.Error())

		abort(w, http.StatusInternalServerError, "cannot resolve IP address")
	default:
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Errorf("Cannot write response: %s", err.Error())
		}
	}
}
