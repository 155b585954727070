package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOfficesQuery := `
	CREATE TABLE IF NOT EXISTS offices (
		id INTEGER PRIMARY KEY,
		city TEXT NOT NULL,
		street TEXT NOT NULL,
		country TEXT NOT NULL,
		lat REAL,
		lon REAL
	);
	`

	createPricingConfigQuery := `
	CREATE TABLE IF NOT EXISTS pricing_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		base_price_per_kg REAL NOT NULL,
		per_km_rate REAL NOT NULL,
		office_multiplier REAL NOT NULL,
		address_multiplier REAL NOT NULL,
		size_multiplier_s REAL NOT NULL,
		size_multiplier_m REAL NOT NULL,
		size_multiplier_l REAL NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_km REAL NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	statements := []string{
		createOfficesQuery,
		createPricingConfigQuery,
		createDistanceCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type OfficeSeed struct {
	ID      int      `json:"id"`
	City    string   `json:"city"`
	Street  string   `json:"street"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

type SeedFile struct {
	Offices []OfficeSeed `json:"offices"`
	Pricing *struct {
		BasePricePerKg    float64 `json:"base_price_per_kg"`
		PerKmRate         float64 `json:"per_km_rate"`
		OfficeMultiplier  float64 `json:"office_multiplier"`
		AddressMultiplier float64 `json:"address_multiplier"`
		SizeMultiplierS   float64 `json:"size_multiplier_s"`
		SizeMultiplierM   float64 `json:"size_multiplier_m"`
		SizeMultiplierL   float64 `json:"size_multiplier_l"`
	} `json:"pricing"`
}

// Populate the database with office and pricing data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed offices: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed offices: parse json: %w", err)
	}

	rows := make([]OfficeSeed, 0, len(data.Offices))
	for i, item := range data.Offices {
		if item.ID <= 0 {
			return fmt.Errorf("seed offices: invalid office id at index %d: %d", i+1, item.ID)
		}

		if strings.TrimSpace(item.City) == "" || strings.TrimSpace(item.Street) == "" {
			return fmt.Errorf("seed offices: office at index %d: city and street cannot be empty", i+1)
		}
		if strings.TrimSpace(item.Country) == "" {
			item.Country = "Bulgaria"
		}
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed offices: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO offices (
		id,
		city,
		street,
		country,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed offices: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range rows {
		if _, err := stmt.Exec(o.ID, o.City, o.Street, o.Country, o.Lat, o.Lon); err != nil {
			return fmt.Errorf("seed offices: insert office id=%d: %w", o.ID, err)
		}
	}

	// Pricing coefficients get a row only when none exists yet, so admin
	// edits survive a re-seed.
	if data.Pricing != nil {
		p := data.Pricing
		insertPricing := `
		INSERT OR IGNORE INTO pricing_config (
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
		if _, err := tx.Exec(
			insertPricing,
			p.BasePricePerKg, p.PerKmRate,
			p.OfficeMultiplier, p.AddressMultiplier,
			p.SizeMultiplierS, p.SizeMultiplierM, p.SizeMultiplierL,
		); err != nil {
			return fmt.Errorf("seed offices: insert pricing config: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed offices: commit tx: %w", err)
	}

	return nil
}
