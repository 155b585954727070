package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/platform/obs"
	"shipment-distance-service/internal/ports"
)

// OSRMProvider is the public demo routing tier. It needs no credential,
// which makes it the fallback when the premium tier is unconfigured or
// failing, and the geometry source for the map preview.
type OSRMProvider struct {
	session  *http.Client
	baseURL  string
	geocoder ports.Geocoder
}

type osrmRouteResponse struct {
	Routes []struct {
		Distance float64         `json:"distance"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"routes"`
}

func NewOSRMProvider(geocoder ports.Geocoder) *OSRMProvider {
	return &OSRMProvider{
		session:  &http.Client{Timeout: 10 * time.Second},
		baseURL:  "https://router.project-osrm.org",
		geocoder: geocoder,
	}
}

// DistanceByCoords fetches a driving route and returns its length in
// kilometers.
func (p *OSRMProvider) DistanceByCoords(
	ctx context.Context,
	origin, dest domain.Coordinates,
) (_ float64, err error) {
	defer obs.Time(ctx, "osrm.DistanceByCoords")(&err)

	decoded, err := p.fetchRoute(ctx, origin, dest, map[string]string{
		"overview":     "false",
		"alternatives": "false",
		"steps":        "false",
	})
	if err != nil {
		return 0, err
	}

	return domain.RoundKm(decoded.Routes[0].Distance / 1000.0), nil
}

// DistanceByAddress geocodes both sides and delegates to the coordinate
// path.
func (p *OSRMProvider) DistanceByAddress(
	ctx context.Context,
	origin, dest string,
) (float64, error) {
	oc, ok, err := p.geocoder.Geocode(ctx, origin)
	if err != nil || !ok {
		return 0, fmt.Errorf("osrm by address: geocode origin %q failed", origin)
	}

	dc, ok, err := p.geocoder.Geocode(ctx, dest)
	if err != nil || !ok {
		return 0, fmt.Errorf("osrm by address: geocode destination %q failed", dest)
	}

	return p.DistanceByCoords(ctx, oc, dc)
}

// RouteGeometry returns the full GeoJSON geometry of the route for map
// display.
func (p *OSRMProvider) RouteGeometry(
	ctx context.Context,
	origin, dest domain.Coordinates,
) (_ json.RawMessage, err error) {
	defer obs.Time(ctx, "osrm.RouteGeometry")(&err)

	decoded, err := p.fetchRoute(ctx, origin, dest, map[string]string{
		"overview":   "full",
		"geometries": "geojson",
	})
	if err != nil {
		return nil, err
	}

	return decoded.Routes[0].Geometry, nil
}

func (p *OSRMProvider) fetchRoute(
	ctx context.Context,
	origin, dest domain.Coordinates,
	params map[string]string,
) (*osrmRouteResponse, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f",
		p.baseURL, origin.Lon, origin.Lat, dest.Lon, dest.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm route: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm route: unexpected status %d", resp.StatusCode)
	}

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("osrm route: decode response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("osrm route: no route in response")
	}

	return &decoded, nil
}
