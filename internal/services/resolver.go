package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/platform/obs"
	"shipment-distance-service/internal/ports"
)

// endpoint is one side of a distance query after resolution: the formatted
// address text plus the best-known coordinates, when any.
type endpoint struct {
	address string
	coords  *domain.Coordinates
}

// tier is a single strategy in the fallback chain. An error means "no
// answer from this tier"; the chain moves on.
type tier struct {
	name string
	run  func(ctx context.Context, origin, dest endpoint) (float64, error)
}

var errTierSkipped = errors.New("tier not applicable")

// DistanceResolver walks an ordered chain of distance strategies:
//
//	cache -> providers by coordinates -> providers by address -> great circle
//
// Coordinate calls come first because they are cheaper (no repeated
// geocoding) and more accurate; within each tier the providers keep their
// configured preference order (premium before demo). The great-circle
// fallback never fails once both endpoints have coordinates.
//
// The resolver never returns an error: every upstream failure degrades to
// "no result" and the caller supplies a manual distance instead.
type DistanceResolver struct {
	offices   ports.OfficeRepository
	geocoder  ports.Geocoder
	cache     ports.DistanceCache
	providers []ports.RouteProvider
}

// NewDistanceResolver builds a resolver over providers in preference
// order (most preferred first).
func NewDistanceResolver(
	offices ports.OfficeRepository,
	geocoder ports.Geocoder,
	cache ports.DistanceCache,
	providers ...ports.RouteProvider,
) *DistanceResolver {
	return &DistanceResolver{
		offices:   offices,
		geocoder:  geocoder,
		cache:     cache,
		providers: providers,
	}
}

// Resolve produces a travel distance in kilometers for two endpoints, or
// ok=false when every tier is exhausted. Results are written back to the
// cache best-effort; a cache write failure never affects the answer.
func (r *DistanceResolver) Resolve(ctx context.Context, origin, dest domain.Location) (float64, bool) {
	defer obs.Time(ctx, "resolver.Resolve")(nil)

	o, ok := r.resolveAddress(ctx, origin)
	if !ok {
		return 0, false
	}

	d, ok := r.resolveAddress(ctx, dest)
	if !ok {
		return 0, false
	}

	keyO := domain.NormalizeAddress(o.address)
	keyD := domain.NormalizeAddress(d.address)

	if km, hit, err := r.cache.Get(ctx, keyO, keyD); err != nil {
		log.Printf("distance cache read failed: %v", err)
	} else if hit {
		return km, true
	}

	// Coordinates are derived once, before the provider tiers: stored
	// office coordinates cost nothing, free addresses get a single
	// geocode attempt each.
	o.coords = r.resolveCoords(ctx, origin, o.address)
	d.coords = r.resolveCoords(ctx, dest, d.address)

	for _, t := range r.tiers() {
		km, err := t.run(ctx, o, d)
		if errors.Is(err, errTierSkipped) || errors.Is(err, ports.ErrNotConfigured) {
			continue
		}
		if err != nil {
			log.Printf("distance tier %s failed: %v", t.name, err)
			continue
		}

		if putErr := r.cache.Put(ctx, keyO, keyD, km); putErr != nil {
			log.Printf("distance cache write failed: %v", putErr)
		}
		return km, true
	}

	return 0, false
}

// EndpointCoords resolves the best-known coordinates of a single endpoint
// (stored office coordinates, else one geocode attempt). Used by the
// routing-preview surface to request path geometry.
func (r *DistanceResolver) EndpointCoords(ctx context.Context, loc domain.Location) (domain.Coordinates, bool) {
	ep, ok := r.resolveAddress(ctx, loc)
	if !ok {
		return domain.Coordinates{}, false
	}

	c := r.resolveCoords(ctx, loc, ep.address)
	if c == nil {
		return domain.Coordinates{}, false
	}

	return *c, true
}

// tiers builds the ordered strategy list: every provider by coordinates,
// every provider by address, then the geometric fallback.
func (r *DistanceResolver) tiers() []tier {
	out := make([]tier, 0, 2*len(r.providers)+1)

	for _, p := range r.providers {
		p := p
		out = append(out, tier{
			name: fmt.Sprintf("%T coords", p),
			run: func(ctx context.Context, o, d endpoint) (float64, error) {
				if o.coords == nil || d.coords == nil {
					return 0, errTierSkipped
				}
				return p.DistanceByCoords(ctx, *o.coords, *d.coords)
			},
		})
	}

	for _, p := range r.providers {
		p := p
		out = append(out, tier{
			name: fmt.Sprintf("%T address", p),
			run: func(ctx context.Context, o, d endpoint) (float64, error) {
				return p.DistanceByAddress(ctx, o.address, d.address)
			},
		})
	}

	out = append(out, tier{
		name: "great-circle",
		run: func(ctx context.Context, o, d endpoint) (float64, error) {
			if o.coords == nil || d.coords == nil {
				return 0, errTierSkipped
			}
			return domain.HaversineKm(*o.coords, *d.coords), nil
		},
	})

	return out
}

// resolveAddress derives the address text of an endpoint. An office
// reference with no stored coordinates still resolves to its formatted
// address so the geocoding tiers can work with it.
func (r *DistanceResolver) resolveAddress(ctx context.Context, loc domain.Location) (endpoint, bool) {
	if loc.IsOffice() {
		office, err := r.offices.GetOffice(ctx, loc.OfficeID)
		if err != nil {
			log.Printf("office lookup id=%d failed: %v", loc.OfficeID, err)
			return endpoint{}, false
		}
		return endpoint{address: office.FullAddress()}, true
	}

	if domain.NormalizeAddress(loc.Address) == "" {
		return endpoint{}, false
	}

	return endpoint{address: loc.Address}, true
}

// resolveCoords returns stored office coordinates when present, otherwise
// a single best-effort geocode of the address text.
func (r *DistanceResolver) resolveCoords(ctx context.Context, loc domain.Location, address string) *domain.Coordinates {
	if loc.IsOffice() {
		office, err := r.offices.GetOffice(ctx, loc.OfficeID)
		if err == nil && office.Coords != nil {
			return office.Coords
		}
	}

	coords, found, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("geocode %q failed: %v", address, err)
	}
	if !found {
		return nil
	}

	return &coords
}
