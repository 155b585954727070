package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"shipment-distance-service/internal/api/dto"
	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/ports"
	"shipment-distance-service/internal/services"
)

// RouteHandler exposes the routing surfaces: the raw geometry proxy and
// the combined distance + geometry preview used by the shipment form.
type RouteHandler struct {
	Resolver *services.DistanceResolver
	Geometry ports.GeometryProvider
}

// GeometryLookup proxies a path-geometry lookup by coordinate pairs. Malformed
// coordinates are a client error; an upstream failure is a 502 with an
// error-shaped payload.
func (h *RouteHandler) GeometryLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	origin, err1 := parseCoords(r, "o_lat", "o_lon")
	dest, err2 := parseCoords(r, "d_lat", "d_lon")
	if err1 != nil || err2 != nil {
		writeError(w, r, http.StatusBadRequest, "missing or invalid coordinates")
		return
	}

	geometry, err := h.Geometry.RouteGeometry(r.Context(), origin, dest)
	if err != nil {
		log.Printf("route geometry failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "routing_failed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]json.RawMessage{"geometry": geometry})
}

// Preview resolves a distance through the fallback chain and fetches the
// path geometry for map display. Both halves are independent: a null
// distance still ships whatever geometry was available and vice versa,
// so shipment registration is never interrupted.
func (h *RouteHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RoutePreviewRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	origin := toLocation(req.Origin)
	dest := toLocation(req.Destination)

	res := dto.RoutePreviewResponse{}

	if km, ok := h.Resolver.Resolve(r.Context(), origin, dest); ok {
		res.DistanceKm = &km
	}

	oc, okO := h.Resolver.EndpointCoords(r.Context(), origin)
	dc, okD := h.Resolver.EndpointCoords(r.Context(), dest)
	if okO && okD {
		geometry, err := h.Geometry.RouteGeometry(r.Context(), oc, dc)
		if err != nil {
			log.Printf("preview geometry failed: %v", err)
		} else {
			res.Geometry = geometry
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toLocation(l dto.LocationRequest) domain.Location {
	if l.OfficeID > 0 {
		return domain.OfficeRef(l.OfficeID)
	}
	return domain.FreeAddress(l.Address)
}

func parseCoords(r *http.Request, latKey, lonKey string) (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get(latKey), 64)
	if err != nil {
		return domain.Coordinates{}, err
	}

	lon, err := strconv.ParseFloat(r.URL.Query().Get(lonKey), 64)
	if err != nil {
		return domain.Coordinates{}, err
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
