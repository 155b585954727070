package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/platform/obs"
	"shipment-distance-service/internal/ports"
)

// NominatimClient implements the Geocoder port against the public
// Nominatim search API. Every lookup is a single attempt bounded by the
// client timeout; there are no retries.
type NominatimClient struct {
	session     *http.Client
	baseURL     string
	userAgent   string
	countryCode string
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func NewNominatimClient(userAgent, countryCode string) *NominatimClient {
	return &NominatimClient{
		session:     &http.Client{Timeout: 10 * time.Second},
		baseURL:     "https://nominatim.openstreetmap.org",
		userAgent:   userAgent,
		countryCode: countryCode,
	}
}

// Geocode resolves an address to coordinates, requesting at most one
// candidate. Any transport error, bad status, decode failure or empty
// candidate list yields found=false; the error (when present) exists only
// so the chain can log the reason.
func (n *NominatimClient) Geocode(
	ctx context.Context,
	address string,
) (_ domain.Coordinates, _ bool, err error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, false, nil
	}

	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	req, err := n.newSearchRequest(ctx, map[string]string{
		"q":      address,
		"format": "json",
		"limit":  "1",
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: %w", address, err)
	}

	resp, err := n.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: unexpected status %d", address, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}

	if len(places) == 0 {
		return domain.Coordinates{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: unparseable coordinates %q,%q", address, places[0].Lat, places[0].Lon)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

// Search returns up to limit candidates for a free-text query, scoped to
// the configured country. The raw upstream objects are preserved for the
// map UI.
func (n *NominatimClient) Search(
	ctx context.Context,
	query string,
	limit int,
) (_ []ports.Place, err error) {
	defer obs.Time(ctx, "nominatim.Search")(&err)

	params := map[string]string{
		"q":              query,
		"format":         "jsonv2",
		"addressdetails": "1",
		"limit":          strconv.Itoa(limit),
	}
	if n.countryCode != "" {
		params["countrycodes"] = n.countryCode
	}

	req, err := n.newSearchRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	resp, err := n.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: unexpected status %d", query, resp.StatusCode)
	}

	var raws []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("search %q: decode response: %w", query, err)
	}

	out := make([]ports.Place, 0, len(raws))
	for _, raw := range raws {
		var p nominatimPlace
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		out = append(out, ports.Place{
			DisplayName: p.DisplayName,
			Lat:         p.Lat,
			Lon:         p.Lon,
			Raw:         raw,
		})
	}

	return out, nil
}

func (n *NominatimClient) newSearchRequest(
	ctx context.Context,
	params map[string]string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	return req, nil
}
