package coffees

import (
	"coffeeshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CoffeeRoutesManager struct {
	logger        *gecho.Logger
	coffeeService *services.CoffeeService
}

func NewCoffeeRoutesManager(logger *gecho.Logger, coffeeService *services.CoffeeService) *CoffeeRoutesManager {
	return &CoffeeRoutesManager{
		logger:        logger,
		coffeeService: coffeeService,
	}
}

func (crm *CoffeeRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/coffees", func(r chi.Router) {
		r.Get("/", crm.ListCoffees)
		r.Post("/", crm.CreateCoffee)
		r.Get("/{id}", crm.GetCoffee)
		r.Put("/{id}", crm.UpdateCoffee)
		r.Delete("/{id}", crm.DeleteCoffee)
	})
}
