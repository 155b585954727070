package ports

import (
	"context"
	"errors"

	"shipment-distance-service/internal/domain"
)

var ErrOfficeNotFound = errors.New("office not found")

// Port: a boundary for looking up offices maintained by the back-office
// CRUD layer.
type OfficeRepository interface {
	// GetOffice returns the office with the given ID, or ErrOfficeNotFound.
	GetOffice(ctx context.Context, id int) (*domain.Office, error)
}
