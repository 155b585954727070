package services

import (
	"context"
	"fmt"
	"math"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/ports"
)

// PricingEngine turns weight, distance, delivery mode and parcel size into
// a price using the coefficients currently stored in the pricing store.
type PricingEngine struct {
	store ports.PricingStore
}

func NewPricingEngine(store ports.PricingStore) *PricingEngine {
	return &PricingEngine{store: store}
}

// Quote computes the shipment price:
//
//	(base_price_per_kg*weight + per_km_rate*distance) * delivery_mult * size_mult
//
// rounded to two decimals. Negative weight or distance is clamped to zero
// rather than rejected. Coefficients are read from the store on every call
// so administrator changes apply between requests.
func (e *PricingEngine) Quote(
	ctx context.Context,
	weightKg float64,
	toOffice bool,
	distanceKm float64,
	size domain.Size,
) (float64, error) {
	cfg, err := e.store.GetConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("quote: %w", err)
	}

	base := cfg.BasePricePerKg * math.Max(weightKg, 0)
	dist := cfg.PerKmRate * math.Max(distanceKm, 0)

	deliveryMult := cfg.AddressMultiplier
	if toOffice {
		deliveryMult = cfg.OfficeMultiplier
	}

	price := (base + dist) * deliveryMult * cfg.SizeMultiplier(size)
	return math.Round(price*100) / 100, nil
}
