package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shipment-distance-service/internal/platform/obs"
)

// SQLDistanceCache is the Postgres variant of the distance cache, for
// deployments where several web processes share one store.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch the cached distance for one origin/destination pair.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	origin string,
	dest string,
) (_ float64, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return 0, false, errors.New("distance cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(dest) == "" {
		return 0, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_km
    FROM distance_cache
    WHERE origin = $1
        AND destination = $2;
	`

	var km float64
	err = s.DB.QueryRowContext(ctx, q, origin, dest).Scan(&km)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return km, true, nil
}

// Store a resolved distance for a single origin/destination pair.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	origin string,
	dest string,
	km float64,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(dest) == "" {
		return errors.New("insert distance cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO distance_cache (origin, destination, distance_km)
    VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_km = EXCLUDED.distance_km;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, dest, km); err != nil {
		return fmt.Errorf("insert distance cache %q -> %q: %w", origin, dest, err)
	}

	return nil
}
