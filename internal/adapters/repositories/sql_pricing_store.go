package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/platform/obs"
)

// SQLPricingStore is the Postgres variant of the pricing coefficient store.
type SQLPricingStore struct {
	DB *sql.DB
}

func NewSQLPricingStore(db *sql.DB) *SQLPricingStore {
	return &SQLPricingStore{DB: db}
}

// GetConfig reads the current coefficient record.
func (s *SQLPricingStore) GetConfig(ctx context.Context) (_ domain.PricingConfig, err error) {
	defer obs.Time(ctx, "pricing.GetConfig")(&err)

	if s.DB == nil {
		return domain.PricingConfig{}, errors.New("pricing store: db is nil")
	}

	q := `
	SELECT base_price_per_kg, per_km_rate,
		office_multiplier, address_multiplier,
		size_multiplier_s, size_multiplier_m, size_multiplier_l
    FROM pricing_config
    WHERE id = 1;
	`

	var c domain.PricingConfig
	err = s.DB.QueryRowContext(ctx, q).Scan(
		&c.BasePricePerKg, &c.PerKmRate,
		&c.OfficeMultiplier, &c.AddressMultiplier,
		&c.SizeMultiplierS, &c.SizeMultiplierM, &c.SizeMultiplierL,
	)
	if err != nil {
		return domain.PricingConfig{}, fmt.Errorf("get pricing config: %w", err)
	}

	return c, nil
}

// UpdateConfig replaces the coefficient record.
func (s *SQLPricingStore) UpdateConfig(ctx context.Context, c domain.PricingConfig) error {
	if s.DB == nil {
		return errors.New("pricing store: db is nil")
	}

	q := `
	INSERT INTO pricing_config (
		id,
		base_price_per_kg,
		per_km_rate,
		office_multiplier,
		address_multiplier,
		size_multiplier_s,
		size_multiplier_m,
		size_multiplier_l
	)
	VALUES (1, $1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET base_price_per_kg = EXCLUDED.base_price_per_kg,
		per_km_rate = EXCLUDED.per_km_rate,
		office_multiplier = EXCLUDED.office_multiplier,
		address_multiplier = EXCLUDED.address_multiplier,
		size_multiplier_s = EXCLUDED.size_multiplier_s,
		size_multiplier_m = EXCLUDED.size_multiplier_m,
		size_multiplier_l = EXCLUDED.size_multiplier_l;
	`

	if _, err := s.DB.ExecContext(
		ctx, q,
		c.BasePricePerKg, c.PerKmRate,
		c.OfficeMultiplier, c.AddressMultiplier,
		c.SizeMultiplierS, c.SizeMultiplierM, c.SizeMultiplierL,
	); err != nil {
		return fmt.Errorf("update pricing config: %w", err)
	}

	return nil
}
