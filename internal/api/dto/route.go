package dto

import "encoding/json"

// LocationRequest is one endpoint of a distance query: either an office
// reference or a free-form address. Exactly one field should be set.
type LocationRequest struct {
	OfficeID int    `json:"office_id,omitempty"`
	Address  string `json:"address,omitempty"`
}

type RoutePreviewRequest struct {
	Origin      LocationRequest `json:"origin"`
	Destination LocationRequest `json:"destination"`
}

// RoutePreviewResponse carries the resolved distance (null when every
// tier failed and the client must fall back to a manual value) and the
// OSRM path geometry for map display (null when unavailable).
type RoutePreviewResponse struct {
	DistanceKm *float64        `json:"distance_km"`
	Geometry   json.RawMessage `json:"geometry"`
}
