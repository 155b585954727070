package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/ports"
)

// SQLite backed office lookup for the distance resolver.
type SqliteOfficeRepository struct {
	DB *sql.DB
}

func NewSqliteOfficeRepository(db *sql.DB) *SqliteOfficeRepository {
	return &SqliteOfficeRepository{DB: db}
}

// GetOffice returns the office with the given ID, or ErrOfficeNotFound.
// Coordinates are optional; an office without stored lat/lon still
// resolves to an address string for geocoding.
func (r *SqliteOfficeRepository) GetOffice(ctx context.Context, id int) (*domain.Office, error) {
	if r.DB == nil {
		return nil, errors.New("office repository: db is nil")
	}

	q := `
	SELECT city, street, country, lat, lon
    FROM offices
    WHERE id = ?;
	`

	var o domain.Office
	var lat, lon sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&o.City, &o.Street, &o.Country, &lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrOfficeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get office id=%d: %w", id, err)
	}

	o.ID = id
	if lat.Valid && lon.Valid {
		o.Coords = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}

	return &o, nil
}
