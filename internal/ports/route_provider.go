package ports

import (
	"context"
	"encoding/json"
	"errors"

	"shipment-distance-service/internal/domain"
)

// ErrNotConfigured marks a provider that is missing its credential and
// must be skipped without a network call.
var ErrNotConfigured = errors.New("route provider is not configured")

// RouteProvider returns a road-network travel distance in kilometers,
// rounded to two decimals. An error means "this provider has no answer";
// the resolver chain degrades to the next tier instead of propagating it.
type RouteProvider interface {
	// DistanceByCoords computes road distance between two coordinate pairs.
	DistanceByCoords(ctx context.Context, origin, dest domain.Coordinates) (float64, error)

	// DistanceByAddress computes road distance between two raw address
	// strings, geocoding both sides internally.
	DistanceByAddress(ctx context.Context, origin, dest string) (float64, error)
}

// GeometryProvider fetches path geometry for map display, independent of
// the cached scalar distance.
type GeometryProvider interface {
	// RouteGeometry returns the GeoJSON geometry of the route between two
	// coordinate pairs.
	RouteGeometry(ctx context.Context, origin, dest domain.Coordinates) (json.RawMessage, error)
}
