package ports

import "context"

// DistanceCache is a persistent advisory cache keyed by the normalized
// (origin, destination) address-string pair. Entries never expire and a
// write with an existing key overwrites the value; the cache is an
// optimization, never a source of truth.
type DistanceCache interface {
	// Get returns the cached distance for a normalized address pair.
	Get(ctx context.Context, origin, dest string) (km float64, ok bool, err error)

	// Put upserts a distance for a normalized address pair. Failures are
	// non-fatal to the caller.
	Put(ctx context.Context, origin, dest string, km float64) error
}
