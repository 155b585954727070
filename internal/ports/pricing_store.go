package ports

import (
	"context"

	"shipment-distance-service/internal/domain"
)

// PricingStore provides the current pricing coefficients. Administrators
// can change them at runtime, so the engine reads on every quote.
type PricingStore interface {
	// GetConfig returns the current coefficient record.
	GetConfig(ctx context.Context) (domain.PricingConfig, error)

	// UpdateConfig replaces the coefficient record.
	UpdateConfig(ctx context.Context, cfg domain.PricingConfig) error
}
