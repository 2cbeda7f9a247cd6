package baristas

import (
	"coffeeshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type BaristaRoutesManager struct {
	logger         *gecho.Logger
	baristaService *services.BaristaService
}

func NewBaristaRoutesManager(logger *gecho.Logger, baristaService *services.BaristaService) *BaristaRoutesManager {
	return &BaristaRoutesManager{
		logger:         logger,
		baristaService: baristaService,
	}
}

func (brm *BaristaRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/baristas", func(r chi.Router) {
		r.Get("/", brm.ListBaristas)
		r.Post("/", brm.CreateBarista)
		r.Get("/{id}", brm.GetBarista)
		r.Put("/{id}", brm.UpdateBarista)
		r.Delete("/{id}", brm.DeleteBarista)
	})
}
