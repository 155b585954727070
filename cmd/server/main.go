package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"

	"shipment-distance-service/internal/adapters/cache"
	"shipment-distance-service/internal/adapters/geocode"
	"shipment-distance-service/internal/adapters/repositories"
	"shipment-distance-service/internal/adapters/route"
	"shipment-distance-service/internal/adapters/throttle"
	"shipment-distance-service/internal/api"
	"shipment-distance-service/internal/config"
	"shipment-distance-service/internal/platform/db"
	"shipment-distance-service/internal/ports"
	"shipment-distance-service/internal/services"
)

const throttleWindow = 1 * time.Second

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Nominatim, ORS, OSRM)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/offices.json")
	userAgent := config.Get("NOMINATIM_USER_AGENT", "ShipmentDistanceService/1.0 (contact: demo@example.com)")
	country := config.Get("GEOCODE_COUNTRY", "bg")

	store, usePostgres, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// Initialize schema and seed office/pricing data on startup for local runs.
	if !usePostgres {
		if err := initAndSeed(store, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	geocoder := geocode.NewNominatimClient(userAgent, country)

	// Fallback order: ORS (premium, skipped without a key) before the
	// public OSRM demo. The resolver tries coordinates first, then raw
	// addresses, then the great-circle approximation.
	osrm := route.NewOSRMProvider(geocoder)
	ors := route.NewORSProvider(os.Getenv("ORS_API_KEY"), geocoder)

	var distanceCache ports.DistanceCache
	var offices ports.OfficeRepository
	var pricingStore ports.PricingStore
	if usePostgres {
		distanceCache = cache.NewSQLDistanceCache(store)
		offices = repositories.NewSQLOfficeRepository(store)
		pricingStore = repositories.NewSQLPricingStore(store)
	} else {
		distanceCache = cache.NewSqliteDistanceCache(store)
		offices = repositories.NewSqliteOfficeRepository(store)
		pricingStore = repositories.NewSqlitePricingStore(store)
	}

	resolver := services.NewDistanceResolver(offices, geocoder, distanceCache, ors, osrm)
	pricing := services.NewPricingEngine(pricingStore)

	router := api.NewRouter(resolver, pricing, geocoder, osrm, newThrottle())

	// Timeouts are tuned for cold-cache distance resolution (up to four
	// sequential external calls before a response).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore opens Postgres when DATABASE_URL is set, otherwise the local
// SQLite file.
func openStore() (*sql.DB, bool, error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		store, err := db.OpenPostgres(databaseURL)
		return store, true, err
	}

	store, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	return store, false, err
}

// newThrottle prefers a shared Redis window when REDIS_URL is set, so
// several web processes enforce one limit; otherwise a process-local map.
func newThrottle() ports.ThrottleStore {
	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if redisURL == "" {
		return throttle.NewMemoryThrottle(throttleWindow)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, falling back to in-memory throttle: %v", err)
		return throttle.NewMemoryThrottle(throttleWindow)
	}

	return throttle.NewRedisThrottle(redis.NewClient(opts), throttleWindow)
}

func initAndSeed(store *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(store); err != nil {
		return err
	}

	return repositories.SeedFromJSON(store, seedPath)
}
