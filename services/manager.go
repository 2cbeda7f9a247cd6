package services

import (
	"coffeeshop_server/database"
	"coffeeshop_server/mapper"
	"coffeeshop_server/repository"
	"coffeeshop_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService   *CacheService
	HealthService  *HealthService
	BaristaService *BaristaService
	CoffeeService  *CoffeeService
	OrderService   *OrderService
}

type options struct {
	now func() time.Time
}

// Option adjusts how the services are built.
type Option func(*options)

// WithClock replaces time.Now as the source of order timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewServiceManager wires every service to store. db only backs the
// database health check and may be nil.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, store *repository.Store, opts ...Option) *ServiceManager {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	policy := structs.DeletePolicyReject
	if cfg.Policy != nil {
		policy = cfg.Policy.Delete
	}

	m := mapper.New(store)
	cacheService := NewCacheService(logger, cfg.Cache)
	healthService := NewHealthService(logger, db, cacheService)
	baristaService := NewBaristaService(logger, store, m, cacheService)
	coffeeService := NewCoffeeService(logger, store, m, cacheService, policy)
	orderService := NewOrderService(logger, store, m, cacheService, policy, o.now)

	return &ServiceManager{
		CacheService:   cacheService,
		HealthService:  healthService,
		BaristaService: baristaService,
		CoffeeService:  coffeeService,
		OrderService:   orderService,
	}
}
