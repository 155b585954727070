package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/platform/obs"
	"shipment-distance-service/internal/ports"
)

// SQLOfficeRepository is the Postgres variant of the office lookup.
type SQLOfficeRepository struct {
	DB *sql.DB
}

func NewSQLOfficeRepository(db *sql.DB) *SQLOfficeRepository {
	return &SQLOfficeRepository{DB: db}
}

// GetOffice returns the office with the given ID, or ErrOfficeNotFound.
func (r *SQLOfficeRepository) GetOffice(ctx context.Context, id int) (_ *domain.Office, err error) {
	defer obs.Time(ctx, "offices.GetOffice")(&err)

	if r.DB == nil {
		return nil, errors.New("office repository: db is nil")
	}

	q := `
	SELECT city, street, country, lat, lon
    FROM offices
    WHERE id = $1;
	`

	var o domain.Office
	var lat, lon sql.NullFloat64
	err = r.DB.QueryRowContext(ctx, q, id).Scan(&o.City, &o.Street, &o.Country, &lat, &lon)
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
