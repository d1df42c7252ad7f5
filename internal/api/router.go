package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"journey-planner-service/internal/api/handlers"
	"journey-planner-service/internal/ports"
)

// RouterConfig carries everything the HTTP layer needs from the composition
// root. Handlers stay unaware of concrete adapters.
type RouterConfig struct {
	Providers       map[string]ports.RouteProvider
	DefaultProvider string

	Flights   ports.FlightLookup
	Timezones ports.TimezoneLocator
	Cache     ports.GeocodeCache

	DefaultTimezoneMode  string
	AirportBufferMinutes int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Providers:            cfg.Providers,
		DefaultProvider:      cfg.DefaultProvider,
		Flights:              cfg.Flights,
		Timezones:            cfg.Timezones,
		Cache:                cfg.Cache,
		DefaultTimezoneMode:  cfg.DefaultTimezoneMode,
		AirportBufferMinutes: cfg.AirportBufferMinutes,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plan", planHandler.Plan)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(mux)
}
