package api

import (
	"coffeeshop_server/api/baristas"
	"coffeeshop_server/api/coffees"
	"coffeeshop_server/api/debug"
	"coffeeshop_server/api/health"
	"coffeeshop_server/api/orders"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	baristaRoutes *baristas.BaristaRoutesManager
	coffeeRoutes  *coffees.CoffeeRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(
	baristaRoutes *baristas.BaristaRoutesManager,
	coffeeRoutes *coffees.CoffeeRoutesManager,
	orderRoutes *orders.OrderRoutesManager,
	healthRoutes *health.HealthRoutesManager,
	debugRoutes *debug.DebugRoutesManager,
) *routerManager {
	return &routerManager{
		baristaRoutes: baristaRoutes,
		coffeeRoutes:  coffeeRoutes,
		orderRoutes:   orderRoutes,
		healthRoutes:  healthRoutes,
		debugRoutes:   debugRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.baristaRoutes.RegisterRoutes(r)
	rm.coffeeRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
