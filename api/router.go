package api

import (
	"coffeeshop_server/api/baristas"
	"coffeeshop_server/api/coffees"
	"coffeeshop_server/api/debug"
	"coffeeshop_server/api/health"
	"coffeeshop_server/api/middleware"
	"coffeeshop_server/api/orders"
	"coffeeshop_server/config"
	"coffeeshop_server/database"
	"coffeeshop_server/services"
	"coffeeshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// App builds the HTTP handler. db only feeds health checks and pool metrics
// and may be nil.
func App(cfg *structs.Config, logger *gecho.Logger, sm *services.ServiceManager, db *database.DB) chi.Router {
	r := chi.NewRouter()

	mwLogger := config.NewLogger(cfg, false)
	metrics := health.NewMetrics(db)

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.CacheService, metrics)

	// Core infra
	r.Use(mw.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)
	r.Use(chiware.StripSlashes)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.BodyLimit))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(mw.SetupCORS().Handler)
	r.Use(mw.MetricsMiddleware)

	r.Use(mw.RateLimitMiddleware())

	NewRouterManager(
		baristas.NewBaristaRoutesManager(logger, sm.BaristaService),
		coffees.NewCoffeeRoutesManager(logger, sm.CoffeeService),
		orders.NewOrderRoutesManager(logger, sm.OrderService),
		health.NewHealthRoutesManager(logger, sm.HealthService, metrics),
		debug.NewDebugRoutesManager(logger, sm.CacheService, config.IsProduction(cfg)),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the "+cfg.Server.AppName+" API"),
			gecho.Send(),
		)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.WithMessage("Route not found"),
			gecho.WithData(map[string]any{"errors": []string{"no route for " + r.Method + " " + r.URL.Path}}),
			gecho.Send(),
		)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		gecho.MethodNotAllowed(w,
			gecho.WithMessage("Method not allowed"),
			gecho.WithData(map[string]any{"errors": []string{r.Method + " is not supported on " + r.URL.Path}}),
			gecho.Send(),
		)
	})

	return r
}
