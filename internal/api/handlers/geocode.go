package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"shipment-distance-service/internal/ports"
)

const (
	geocodeMinQueryLen   = 3
	geocodeMaxCandidates = 6
)

// GeocodeHandler proxies free-text address search to the upstream
// geocoding service, shielded by the per-client throttle. Upstream
// failures surface as an empty candidate list, never as an error shape,
// so address autocompletion degrades silently in the UI.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
	Throttle ports.ThrottleStore
}

func (h *GeocodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	allowed, err := h.Throttle.Allow(r.Context(), clientID(r))
	if err != nil {
		log.Printf("throttle check failed: %v", err)
	}
	if !allowed {
		writeJSON(w, r, http.StatusTooManyRequests, []json.RawMessage{})
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < geocodeMinQueryLen {
		writeJSON(w, r, http.StatusOK, []json.RawMessage{})
		return
	}

	places, err := h.Geocoder.Search(r.Context(), q, geocodeMaxCandidates)
	if err != nil {
		log.Printf("geocode search failed: %v", err)
		writeJSON(w, r, http.StatusOK, []json.RawMessage{})
		return
	}

	out := make([]json.RawMessage, 0, len(places))
	for _, p := range places {
		out = append(out, p.Raw)
	}

	writeJSON(w, r, http.StatusOK, out)
}

// clientID identifies the caller for throttling: the forwarded-for header
// when present (first hop), otherwise the direct connection address.
func clientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return r.RemoteAddr
}
