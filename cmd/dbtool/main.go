package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"shipment-distance-service/internal/adapters/repositories"
	"shipment-distance-service/internal/config"
	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/platform/db"
	"shipment-distance-service/internal/ports"
)

// dbtool maintains the service database from the command line:
//
//	dbtool init          initialize schema and seed offices/pricing
//	dbtool cache         list cached distance pairs
//	dbtool pricing       print the current pricing coefficients
//	dbtool set-pricing   replace the pricing coefficients (flags)
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	command := "init"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	store, usePostgres, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	switch command {
	case "init":
		if err := initAndSeed(store, usePostgres); err != nil {
			log.Fatal(err)
		}
	case "cache":
		if err := listCache(store); err != nil {
			log.Fatal(err)
		}
	case "pricing":
		if err := printPricing(store, usePostgres); err != nil {
			log.Fatal(err)
		}
	case "set-pricing":
		if err := setPricing(store, usePostgres, os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("unknown command %q (want init, cache, pricing or set-pricing)", command)
	}
}

func openStore() (*sql.DB, bool, error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		store, err := db.OpenPostgres(databaseURL)
		return store, true, err
	}

	store, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	return store, false, err
}

func initAndSeed(store *sql.DB, usePostgres bool) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(store); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if usePostgres {
		// The JSON seeder uses SQLite upsert syntax; Postgres offices are
		// loaded with set-pricing and plain SQL instead.
		log.Println("Skipping seed step for Postgres store.")
		return nil
	}

	log.Println("Seeding database...")
	seedPath := config.Get("SEED_PATH", "data/seeds/offices.json")
	if err := repositories.SeedFromJSON(store, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}

func listCache(store *sql.DB) error {
	rows, err := store.Query(`SELECT origin, destination, distance_km FROM distance_cache ORDER BY origin, destination`)
	if err != nil {
		return fmt.Errorf("list cache: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var origin, dest string
		var km float64
		if err := rows.Scan(&origin, &dest, &km); err != nil {
			return fmt.Errorf("list cache: scan: %w", err)
		}
		fmt.Printf("%-50s -> %-50s %8.2f km\n", origin, dest, km)
		n++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list cache: %w", err)
	}

	fmt.Printf("%d cached pair(s)\n", n)
	return nil
}

func pricingStore(store *sql.DB, usePostgres bool) ports.PricingStore {
	if usePostgres {
		return repositories.NewSQLPricingStore(store)
	}
	return repositories.NewSqlitePricingStore(store)
}

func printPricing(store *sql.DB, usePostgres bool) error {
	cfg, err := pricingStore(store, usePostgres).GetConfig(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("base_price_per_kg   %.2f\n", cfg.BasePricePerKg)
	fmt.Printf("per_km_rate         %.2f\n", cfg.PerKmRate)
	fmt.Printf("office_multiplier   %.2f\n", cfg.OfficeMultiplier)
	fmt.Printf("address_multiplier  %.2f\n", cfg.AddressMultiplier)
	fmt.Printf("size_multiplier_s   %.2f\n", cfg.SizeMultiplierS)
	fmt.Printf("size_multiplier_m   %.2f\n", cfg.SizeMultiplierM)
	fmt.Printf("size_multiplier_l   %.2f\n", cfg.SizeMultiplierL)
	return nil
}

func setPricing(store *sql.DB, usePostgres bool, args []string) error {
	fs := flag.NewFlagSet("set-pricing", flag.ExitOnError)
	cfg := domain.PricingConfig{}
	fs.Float64Var(&cfg.BasePricePerKg, "base", 2.50, "base price per kg")
	fs.Float64Var(&cfg.PerKmRate, "per-km", 0.40, "rate per km")
	fs.Float64Var(&cfg.OfficeMultiplier, "office-mult", 1.0, "office delivery multiplier")
	fs.Float64Var(&cfg.AddressMultiplier, "address-mult", 1.2, "address delivery multiplier")
	fs.Float64Var(&cfg.SizeMultiplierS, "size-s", 0.8, "size S multiplier")
	fs.Float64Var(&cfg.SizeMultiplierM, "size-m", 1.0, "size M multiplier")
	fs.Float64Var(&cfg.SizeMultiplierL, "size-l", 1.5, "size L multiplier")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := pricingStore(store, usePostgres).UpdateConfig(context.Background(), cfg); err != nil {
		return err
	}

	log.Println("Pricing config updated.")
	return nil
}
