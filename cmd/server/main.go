package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"journey-planner-service/internal/adapters/cache"
	"journey-planner-service/internal/adapters/flight"
	"journey-planner-service/internal/adapters/providers"
	"journey-planner-service/internal/adapters/tz"
	"journey-planner-service/internal/api"
	"journey-planner-service/internal/config"
	"journey-planner-service/internal/platform/db"
	"journey-planner-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (OSRM, Google, Mapbox, aviationstack, Postgres)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	// OSRM needs no credentials, so it is always registered and serves as
	// the fallback when paid providers are unconfigured.
	registry := map[string]ports.RouteProvider{
		"osrm": providers.NewOSRM(cfg.Providers.OSRMBaseURL, cfg.Providers.NominatimBaseURL),
	}
	if strings.TrimSpace(cfg.Providers.GoogleAPIKey) != "" {
		google, err := providers.NewGoogle(cfg.Providers.GoogleAPIKey)
		if err != nil {
			log.Fatal(err)
		}
		registry["google"] = google
	}
	if strings.TrimSpace(cfg.Providers.MapboxToken) != "" {
		mapbox, err := providers.NewMapbox(cfg.Providers.MapboxToken)
		if err != nil {
			log.Fatal(err)
		}
		registry["mapbox"] = mapbox
	}
	if _, ok := registry[cfg.Planning.DefaultProvider]; !ok {
		log.Fatalf("default provider %q is not configured", cfg.Planning.DefaultProvider)
	}

	var flights ports.FlightLookup
	if strings.TrimSpace(cfg.Providers.AviationStackKey) != "" {
		flights, err = flight.NewAviationStack(cfg.Providers.AviationStackKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("AVIATIONSTACK_API_KEY not set, flight starts disabled")
	}

	timezones, err := tz.NewLocator()
	if err != nil {
		log.Fatal(err)
	}

	// The geocode cache is optional: without a database every run geocodes
	// from scratch, which is slower but correct.
	var geocodeCache ports.GeocodeCache
	if strings.TrimSpace(cfg.Database.URL) != "" {
		pool, err := db.Open(cfg.Database.URL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		pgCache := cache.NewPGGeocodeCache(pool)
		if err := pgCache.EnsureSchema(context.Background()); err != nil {
			log.Fatal(err)
		}
		geocodeCache = pgCache
	} else {
		log.Println("DATABASE_URL not set, geocode caching disabled")
	}

	router := api.NewRouter(api.RouterConfig{
		Providers:            registry,
		DefaultProvider:      cfg.Planning.DefaultProvider,
		Flights:              flights,
		Timezones:            timezones,
		Cache:                geocodeCache,
		DefaultTimezoneMode:  cfg.Planning.DefaultTimezoneMode,
		AirportBufferMinutes: cfg.Planning.AirportBufferMinutes,
	})

	// Timeouts are tuned for multi-leg routing against external APIs.
	log.Printf("Server listening addr=:%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
