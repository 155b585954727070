package api

import (
	"net/http"

	"shipment-distance-service/internal/api/handlers"
	"shipment-distance-service/internal/ports"
	"shipment-distance-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	resolver *services.DistanceResolver,
	pricing *services.PricingEngine,
	geocoder ports.Geocoder,
	geometry ports.GeometryProvider,
	throttle ports.ThrottleStore,
) http.Handler {
	mux := http.NewServeMux()

	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder, Throttle: throttle}
	routeHandler := &handlers.RouteHandler{Resolver: resolver, Geometry: geometry}
	quoteHandler := &handlers.QuoteHandler{Pricing: pricing}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/geocode", geocodeHandler.Search)
	mux.HandleFunc("/api/route", routeHandler.GeometryLookup)
	mux.HandleFunc("/api/route-preview", routeHandler.Preview)
	mux.HandleFunc("/api/quote", quoteHandler.Quote)

	return requestIDMiddleware(loggingMiddleware(mux))
}
