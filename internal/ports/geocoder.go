package ports

import (
	"context"
	"encoding/json"

	"shipment-distance-service/internal/domain"
)

// Place is a single geocoding candidate returned by the search surface.
// Raw carries the upstream payload untouched for map UIs.
type Place struct {
	DisplayName string          `json:"display_name"`
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	Raw         json.RawMessage `json:"-"`
}

// Geocoder resolves free-form addresses to coordinates.
//
// Geocode is always fallible: found=false with a non-nil error carries the
// upstream reason for logging, found=false with a nil error means the
// service answered but had no candidate. Callers never treat either as
// fatal.
type Geocoder interface {
	// Geocode resolves an address to coordinates, requesting at most one
	// candidate. Empty input returns found=false without a network call.
	Geocode(ctx context.Context, address string) (coords domain.Coordinates, found bool, err error)

	// Search returns up to limit candidates for a free-text query,
	// scoped to the configured country.
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}
