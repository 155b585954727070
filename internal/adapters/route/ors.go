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

// ORSProvider is the premium directions tier, backed by OpenRouteService.
// It requires an API key; an empty key makes every call return
// ports.ErrNotConfigured without touching the network so the chain can
// move straight to the demo tier.
type ORSProvider struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	profile  string
	geocoder ports.Geocoder
}

type orsDirectionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

func NewORSProvider(apiKey string, geocoder ports.Geocoder) *ORSProvider {
	return &ORSProvider{
		session:  &http.Client{Timeout: 12 * time.Second},
		apiKey:   apiKey,
		baseURL:  "https://api.openrouteservice.org",
		profile:  "driving-car",
		geocoder: geocoder,
	}
}

// DistanceByCoords fetches a driving route between two coordinate pairs
// and returns its length in kilometers.
func (o *ORSProvider) DistanceByCoords(
	ctx context.Context,
	origin, dest domain.Coordinates,
) (_ float64, err error) {
	if o.apiKey == "" {
		return 0, ports.ErrNotConfigured
	}

	defer obs.Time(ctx, "ors.DistanceByCoords")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("ors directions: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("api_key", o.apiKey)
	q.Set("start", fmt.Sprintf("%f,%f", origin.Lon, origin.Lat))
	q.Set("end", fmt.Sprintf("%f,%f", dest.Lon, dest.Lat))
	req.URL.RawQuery = q.Encode()

	resp, err := o.session.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ors directions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ors directions: unexpected status %d", resp.StatusCode)
	}

	var decoded orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("ors directions: decode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return 0, fmt.Errorf("ors directions: no route in response")
	}

	meters := decoded.Features[0].Properties.Summary.Distance
	return domain.RoundKm(meters / 1000.0), nil
}

// DistanceByAddress geocodes both sides and delegates to the coordinate
// path. The key check happens before any geocoding.
func (o *ORSProvider) DistanceByAddress(
	ctx context.Context,
	origin, dest string,
) (float64, error) {
	if o.apiKey == "" {
		return 0, ports.ErrNotConfigured
	}

	oc, ok, err := o.geocoder.Geocode(ctx, origin)
	if err != nil || !ok {
		return 0, fmt.Errorf("ors by address: geocode origin %q failed", origin)
	}

	dc, ok, err := o.geocoder.Geocode(ctx, dest)
	if err != nil || !ok {
		return 0, fmt.Errorf("ors by address: geocode destination %q failed", dest)
	}

	return o.DistanceByCoords(ctx, oc, dc)
}
