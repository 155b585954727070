package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/services"
)

type fixedPricingStore struct{}

func (fixedPricingStore) GetConfig(ctx context.Context) (domain.PricingConfig, error) {
	return domain.PricingConfig{
		BasePricePerKg:    2.50,
		PerKmRate:         0.40,
		OfficeMultiplier:  1.0,
		AddressMultiplier: 1.2,
		SizeMultiplierS:   0.8,
		SizeMultiplierM:   1.0,
		SizeMultiplierL:   1.5,
	}, nil
}

func (fixedPricingStore) UpdateConfig(ctx context.Context, cfg domain.PricingConfig) error {
	return nil
}

func newQuoteHandler() *QuoteHandler {
	return &QuoteHandler{Pricing: services.NewPricingEngine(fixedPricingStore{})}
}

func TestQuoteHandler(t *testing.T) {
	h := newQuoteHandler()

	body := `{"weight_kg":2.0,"to_office":true,"distance_km":10.0,"size":"M"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"price":9}`, rec.Body.String())
}

func TestQuoteHandlerUnknownSizeDefaultsToM(t *testing.T) {
	h := newQuoteHandler()

	body := `{"weight_kg":2.0,"to_office":true,"distance_km":10.0,"size":"XXL"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"price":9}`, rec.Body.String())
}

func TestQuoteHandlerInvalidBody(t *testing.T) {
	h := newQuoteHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteHandlerMethodNotAllowed(t *testing.T) {
	h := newQuoteHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
