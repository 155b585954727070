package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite backed cache for resolved address-pair distances. Keys are
// expected to be consistent (e.g., already normalized) by the caller.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

// Fetch the cached distance for one origin/destination pair.
func (s *SqliteDistanceCache) Get(
	ctx context.Context,
	origin string,
	dest string,
) (float64, bool, error) {
	if s.DB == nil {
		return 0, false, errors.New("distance cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(dest) == "" {
		return 0, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_km
    FROM distance_cache
    WHERE origin = ?
        AND destination = ?;
	`

	var km float64
	err := s.DB.QueryRowContext(ctx, q, origin, dest).Scan(&km)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return km, true, nil
}

// Store a resolved distance for a single origin/destination pair.
// Last write wins; there is no versioning or TTL.
func (s *SqliteDistanceCache) Put(
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
	INSERT OR REPLACE INTO distance_cache (origin, destination, distance_km)
    VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, dest, km); err != nil {
		return fmt.Errorf("insert distance cache %q -> %q: %w", origin, dest, err)
	}

	return nil
}
