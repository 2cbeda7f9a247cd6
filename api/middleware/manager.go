package middleware

import (
	"coffeeshop_server/api/health"
	"coffeeshop_server/services"
	"coffeeshop_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg          *structs.Config
	logger       *gecho.Logger
	cacheService *services.CacheService
	metrics      *health.Metrics
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, cacheService *services.CacheService, metrics *health.Metrics) *Middleware {
	return &Middleware{
		cfg:          cfg,
		logger:       logger,
		cacheService: cacheService,
		metrics:      metrics,
	}
}
