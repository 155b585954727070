package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipment-distance-service/internal/domain"
)

// SQLite backed store for the single pricing coefficient record.
type SqlitePricingStore struct {
	DB *sql.DB
}

func NewSqlitePricingStore(db *sql.DB) *SqlitePricingStore {
	return &SqlitePricingStore{DB: db}
}

// GetConfig reads the current coefficient record. Called on every quote;
// coefficients are admin-editable and must never be cached in memory.
func (s *SqlitePricingStore) GetConfig(ctx context.Context) (domain.PricingConfig, error) {
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
	err := s.DB.QueryRowContext(ctx, q).Scan(
		&c.BasePricePerKg, &c.PerKmRate,
		&c.OfficeMultiplier, &c.AddressMultiplier,
		&c.SizeMultiplierS, &c.SizeMultiplierM, &c.SizeMultiplierL,
	)
	if err != nil {
		return domain.PricingConfig{}, fmt.Errorf("get pricing config: %w", err)
	}

	return c, nil
}

// UpdateConfig replaces the coefficient record (admin panel mutation).
func (s *SqlitePricingStore) UpdateConfig(ctx context.Context, c domain.PricingConfig) error {
	if s.DB == nil {
		return errors.New("pricing store: db is nil")
	}

	q := `
	INSERT OR REPLACE INTO pricing_config (
		id,
		base_price_per_kg,
		per_km_rate,
		office_multiplier,
		address_multiplier,
		size_multiplier_s,
		size_multiplier_m,
		size_multiplier_l
	)
	VALUES (1, ?, ?, ?, ?, ?, ?, ?);
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
