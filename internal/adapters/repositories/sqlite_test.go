package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/ports"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func writeSeedFile(t *testing.T, seed SeedFile) string {
	t.Helper()

	data, err := json.Marshal(seed)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "offices.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSeedAndGetOffice(t *testing.T) {
	db := newTestDB(t)

	lat, lon := 42.6723, 23.3199
	path := writeSeedFile(t, SeedFile{Offices: []OfficeSeed{
		{ID: 1, City: "Sofia", Street: "bul. Vitosha 89", Country: "Bulgaria", Lat: &lat, Lon: &lon},
		{ID: 2, City: "Burgas", Street: "ul. Aleksandrovska 21", Country: "Bulgaria"},
	}})
	require.NoError(t, SeedFromJSON(db, path))

	repo := NewSqliteOfficeRepository(db)

	o, err := repo.GetOffice(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "bul. Vitosha 89, Sofia, Bulgaria", o.FullAddress())
	require.NotNil(t, o.Coords)
	assert.Equal(t, 42.6723, o.Coords.Lat)

	// An office without stored coordinates still resolves to its address.
	o, err = repo.GetOffice(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, o.Coords)
	assert.Equal(t, "ul. Aleksandrovska 21, Burgas, Bulgaria", o.FullAddress())

	_, err = repo.GetOffice(context.Background(), 42)
	assert.True(t, errors.Is(err, ports.ErrOfficeNotFound))
}

func TestSeedRejectsInvalidOffices(t *testing.T) {
	db := newTestDB(t)

	path := writeSeedFile(t, SeedFile{Offices: []OfficeSeed{
		{ID: 0, City: "Sofia", Street: "x"},
	}})
	assert.Error(t, SeedFromJSON(db, path))

	path = writeSeedFile(t, SeedFile{Offices: []OfficeSeed{
		{ID: 1, City: "", Street: "x"},
	}})
	assert.Error(t, SeedFromJSON(db, path))
}

func TestPricingStoreRoundtrip(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlitePricingStore(db)
	ctx := context.Background()

	cfg := domain.PricingConfig{
		BasePricePerKg:    2.50,
		PerKmRate:         0.40,
		OfficeMultiplier:  1.0,
		AddressMultiplier: 1.2,
		SizeMultiplierS:   0.8,
		SizeMultiplierM:   1.0,
		SizeMultiplierL:   1.5,
	}
	require.NoError(t, store.UpdateConfig(ctx, cfg))

	got, err := store.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	// Update replaces the single record.
	cfg.PerKmRate = 0.55
	require.NoError(t, store.UpdateConfig(ctx, cfg))

	got, err = store.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.55, got.PerKmRate)
}

func TestSeedPricingDoesNotOverwriteAdminEdits(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlitePricingStore(db)
	ctx := context.Background()

	seed := SeedFile{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"offices": [],
		"pricing": {
			"base_price_per_kg": 2.5, "per_km_rate": 0.4,
			"office_multiplier": 1.0, "address_multiplier": 1.2,
			"size_multiplier_s": 0.8, "size_multiplier_m": 1.0, "size_multiplier_l": 1.5
		}
	}`), &seed))
	path := writeSeedFile(t, seed)

	require.NoError(t, SeedFromJSON(db, path))

	cfg, err := store.GetConfig(ctx)
	require.NoError(t, err)
	cfg.BasePricePerKg = 9.99
	require.NoError(t, store.UpdateConfig(ctx, cfg))

	// A re-seed (e.g. on restart) must keep the admin's coefficients.
	require.NoError(t, SeedFromJSON(db, path))

	got, err := store.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.BasePricePerKg)
}
