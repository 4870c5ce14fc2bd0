package api

import (
	"net"
	"net/http"
)

// selfLookupIP resolves the address of the caller. RealIP middleware
// already unwrapped X-Forwarded-For/X-Real-IP into RemoteAddr, which
// may or may not carry a port.
func (h handler) selfLookupIP(w http.ResponseWriter, r *http.Request) {
	address := r.RemoteAddr
	if host, _, err := net.SplitHostPort(address); err == nil {
		address = host
	}

	h.resolveAndRespond(w, address, boolFlag(r.URL.Query().Get("raw")))
}
