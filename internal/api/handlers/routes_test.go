package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/ports"
	"shipment-distance-service/internal/services"
)

type fakeGeometry struct {
	geometry json.RawMessage
	err      error
	calls    int
}

func (f *fakeGeometry) RouteGeometry(ctx context.Context, o, d domain.Coordinates) (json.RawMessage, error) {
	f.calls++
	return f.geometry, f.err
}

type fakeOffices struct{}

func (fakeOffices) GetOffice(ctx context.Context, id int) (*domain.Office, error) {
	return nil, ports.ErrOfficeNotFound
}

type coordsGeocoder struct {
	coords map[string]domain.Coordinates
}

func (g *coordsGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	c, ok := g.coords[address]
	return c, ok, nil
}

func (g *coordsGeocoder) Search(ctx context.Context, query string, limit int) ([]ports.Place, error) {
	return nil, nil
}

type mapCache struct{ m map[string]float64 }

func (c *mapCache) Get(ctx context.Context, origin, dest string) (float64, bool, error) {
	km, ok := c.m[origin+"|"+dest]
	return km, ok, nil
}

func (c *mapCache) Put(ctx context.Context, origin, dest string, km float64) error {
	c.m[origin+"|"+dest] = km
	return nil
}

type fixedProvider struct{ km float64 }

func (p fixedProvider) DistanceByCoords(ctx context.Context, o, d domain.Coordinates) (float64, error) {
	return p.km, nil
}

func (p fixedProvider) DistanceByAddress(ctx context.Context, origin, dest string) (float64, error) {
	return 0, errors.New("address routing unavailable")
}

func TestGeometryLookupMalformedCoords(t *testing.T) {
	h := &RouteHandler{Geometry: &fakeGeometry{}}

	req := httptest.NewRequest(http.MethodGet, "/api/route?o_lat=42.7&o_lon=abc&d_lat=42.1&d_lon=24.7", nil)
	rec := httptest.NewRecorder()
	h.GeometryLookup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid coordinates")
}

func TestGeometryLookupUpstreamFailure(t *testing.T) {
	h := &RouteHandler{Geometry: &fakeGeometry{err: errors.New("osrm down")}}

	req := httptest.NewRequest(http.MethodGet, "/api/route?o_lat=42.7&o_lon=23.3&d_lat=42.1&d_lon=24.7", nil)
	rec := httptest.NewRecorder()
	h.GeometryLookup(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "routing_failed")
}

func TestGeometryLookupSuccess(t *testing.T) {
	geom := &fakeGeometry{geometry: json.RawMessage(`{"type":"LineString","coordinates":[]}`)}
	h := &RouteHandler{Geometry: geom}

	req := httptest.NewRequest(http.MethodGet, "/api/route?o_lat=42.7&o_lon=23.3&d_lat=42.1&d_lon=24.7", nil)
	rec := httptest.NewRecorder()
	h.GeometryLookup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"geometry":{"type":"LineString","coordinates":[]}}`, rec.Body.String())
}

func newPreviewHandler(geom *fakeGeometry) *RouteHandler {
	geocoder := &coordsGeocoder{coords: map[string]domain.Coordinates{
		"Sofia center":   {Lat: 42.6977, Lon: 23.3219},
		"Plovdiv center": {Lat: 42.1354, Lon: 24.7453},
	}}

	resolver := services.NewDistanceResolver(
		fakeOffices{},
		geocoder,
		&mapCache{m: map[string]float64{}},
		fixedProvider{km: 146.07},
	)

	return &RouteHandler{Resolver: resolver, Geometry: geom}
}

func TestPreviewResolvesDistanceAndGeometry(t *testing.T) {
	geom := &fakeGeometry{geometry: json.RawMessage(`{"type":"LineString","coordinates":[[23.3,42.7]]}`)}
	h := newPreviewHandler(geom)

	body := `{"origin":{"address":"Sofia center"},"destination":{"address":"Plovdiv center"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/route-preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Preview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		DistanceKm *float64        `json:"distance_km"`
		Geometry   json.RawMessage `json:"geometry"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.NotNil(t, res.DistanceKm)
	assert.Equal(t, 146.07, *res.DistanceKm)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[23.3,42.7]]}`, string(res.Geometry))
}

func TestPreviewUnresolvableEndpointsYieldNulls(t *testing.T) {
	geom := &fakeGeometry{geometry: json.RawMessage(`{}`)}
	h := newPreviewHandler(geom)

	body := `{"origin":{"address":"Atlantis"},"destination":{"address":"El Dorado"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/route-preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Preview(rec, req)

	// The form flow must never be interrupted: unresolvable endpoints
	// respond 200 with null distance so the client falls back to a
	// manual value.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"distance_km":null,"geometry":null}`, rec.Body.String())
	assert.Zero(t, geom.calls)
}

func TestPreviewGeometryFailureKeepsDistance(t *testing.T) {
	geom := &fakeGeometry{err: errors.New("osrm down")}
	h := newPreviewHandler(geom)

	body := `{"origin":{"address":"Sofia center"},"destination":{"address":"Plovdiv center"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/route-preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Preview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"distance_km":146.07,"geometry":null}`, rec.Body.String())
}

func TestPreviewRejectsInvalidBody(t *testing.T) {
	h := newPreviewHandler(&fakeGeometry{})

	req := httptest.NewRequest(http.MethodPost, "/api/route-preview", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	h.Preview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
