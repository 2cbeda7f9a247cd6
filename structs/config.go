package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Policy    *PolicyConfig
}

type ServerConfig struct {
	AppName        string        // CoffeeShop
	Environment    string        // development, production
	LogLevel       string        // overrides the environment default when set
	Port           string        // :8080
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	ShutdownGrace  time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
	BodyLimit      int64         // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

// DatabaseDriver selects the database/sql driver bun runs on top of.
type DatabaseDriver string

const (
	DriverPgx DatabaseDriver = "pgx"
	DriverPg  DatabaseDriver = "pg"
)

type DatabaseConfig struct {
	Driver             DatabaseDriver
	Host               string
	Port               int
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxConns           int
	MinConns           int
	MaxLifetime        time.Duration
	MaxIdleTime        time.Duration
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	QueryTimeout       time.Duration // upper bound for one use case transaction
	SlowQueryThreshold time.Duration
	TxRetryAttempts    int
	MigrateOnStart     bool
}

type CacheConfig struct {
	Enabled         bool
	Address         string
	Username        string
	Password        string
	DB              int
	KeyPrefix       string
	TTL             time.Duration
	PoolSize        int
	MinIdleConns    int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	GeneralLimit  int
	GeneralWindow time.Duration
	WriteLimit    int
	WriteWindow   time.Duration
}

// DeletePolicy decides what happens to association rows when an order or
// coffee that is still linked gets deleted.
type DeletePolicy string

const (
	DeletePolicyReject  DeletePolicy = "reject"
	DeletePolicyCascade DeletePolicy = "cascade"
)

type PolicyConfig struct {
	Delete DeletePolicy
}
