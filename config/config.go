package config

import (
	"coffeeshop_server/structs"
	"strings"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

// GetConfig returns the process wide configuration, read from the environment once.
func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load builds a fresh configuration from the current environment.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:        getEnvAsString("APP_NAME", "CoffeeShop"),
			Environment:    getEnvAsString("APP_ENV", "development"),
			LogLevel:       getEnvAsString("LOG_LEVEL", ""),
			Port:           getEnvAsString("APP_PORT", ":8080"),
			ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
			IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			ShutdownGrace:  getEnvAsTimeDuration("SERVER_SHUTDOWN_GRACE", 10*time.Second),
			MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			BodyLimit:      int64(getEnvAsInt("SERVER_BODY_LIMIT", 1<<20)),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "X-Request-ID"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Driver:             structs.DatabaseDriver(strings.ToLower(getEnvAsString("DB_DRIVER", string(structs.DriverPgx)))),
			Host:               getEnvAsString("DB_HOST", "localhost"),
			Port:               getEnvAsInt("DB_PORT", 5432),
			User:               getEnvAsString("DB_USER", "postgres"),
			Password:           getEnvAsString("DB_PASSWORD", "password"),
			Name:               getEnvAsString("DB_NAME", "coffeeshop"),
			SSLMode:            getEnvAsString("DB_SSLMODE", "disable"),
			MaxConns:           getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:           getEnvAsInt("DB_MIN_CONNS", 2),
			MaxLifetime:        getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:        getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			ReadTimeout:        getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:       getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			QueryTimeout:       getEnvAsTimeDuration("DB_QUERY_TIMEOUT", 10*time.Second),
			SlowQueryThreshold: getEnvAsTimeDuration("DB_SLOW_QUERY_THRESHOLD", time.Second),
			TxRetryAttempts:    getEnvAsInt("DB_TX_RETRY_ATTEMPTS", 3),
			MigrateOnStart:     getEnvAsBool("DB_MIGRATE_ON_START", true),
		},
		Cache: &structs.CacheConfig{
			Enabled:         getEnvAsBool("CACHE_ENABLED", false),
			Address:         getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
			Username:        getEnvAsString("CACHE_USERNAME", ""),
			Password:        getEnvAsString("CACHE_PASSWORD", ""),
			DB:              getEnvAsInt("CACHE_DB", 0),
			KeyPrefix:       getEnvAsString("CACHE_KEY_PREFIX", "coffeeshop"),
			TTL:             getEnvAsTimeDuration("CACHE_TTL", 5*time.Minute),
			PoolSize:        getEnvAsInt("CACHE_POOL_SIZE", 10),
			MinIdleConns:    getEnvAsInt("CACHE_MIN_IDLE_CONNS", 2),
			DialTimeout:     getEnvAsTimeDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     getEnvAsTimeDuration("CACHE_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
			MaxRetries:      getEnvAsInt("CACHE_MAX_RETRIES", 3),
			MinRetryBackoff: getEnvAsTimeDuration("CACHE_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: getEnvAsTimeDuration("CACHE_MAX_RETRY_BACKOFF", 512*time.Millisecond),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", false),
			GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL", 300),
			GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			WriteLimit:    getEnvAsInt("RATE_LIMIT_WRITE", 60),
			WriteWindow:   getEnvAsTimeDuration("RATE_LIMIT_WRITE_WINDOW", time.Minute),
		},
		Policy: &structs.PolicyConfig{
			Delete: parseDeletePolicy(getEnvAsString("DELETE_POLICY", string(structs.DeletePolicyReject))),
		},
	}
}

// parseDeletePolicy only switches to cascading on an explicit opt-in.
func parseDeletePolicy(value string) structs.DeletePolicy {
	if strings.EqualFold(strings.TrimSpace(value), string(structs.DeletePolicyCascade)) {
		return structs.DeletePolicyCascade
	}
	return structs.DeletePolicyReject
}

// LogLevel returns the configured level, falling back to the environment default.
func LogLevel(cfg *structs.Config) string {
	if cfg.Server.LogLevel != "" {
		return cfg.Server.LogLevel
	}
	if IsProduction(cfg) {
		return "info"
	}
	return "debug"
}

func IsProduction(cfg *structs.Config) bool {
	return cfg.Server.Environment == "production"
}
