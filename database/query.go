package database

import (
	"coffeeshop_server/structs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DB wraps the bun database handle with transaction and retry support
type DB struct {
	*bun.DB
	logger       *gecho.Logger
	retry        RetryConfig
	queryTimeout time.Duration
}

var instance *DB

// Connect opens the configured driver, applies pool settings and waits for
// the server to answer a ping.
func Connect(ctx context.Context, cfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	sqldb, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}

	// Apply pool settings from configuration
	sqldb.SetMaxOpenConns(cfg.MaxConns)
	sqldb.SetMaxIdleConns(cfg.MinConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.MaxIdleTime)

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	bunDB.AddQueryHook(&connectionHealthHook{logger: logger, slowQuery: cfg.SlowQueryThreshold})

	retry := DefaultRetryConfig()
	if cfg.TxRetryAttempts > 0 {
		retry.MaxAttempts = cfg.TxRetryAttempts
	}

	db := &DB{DB: bunDB, logger: logger, retry: retry, queryTimeout: cfg.QueryTimeout}

	// The server may still be starting, so give the first ping a few tries.
	pingErr := RetryWithBackoff(ctx, RetryConfig{
		MaxAttempts:  5,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		EnableRetry:  true,
	}, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if pingErr != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	logger.Info("Connected to database successfully",
		gecho.Field("driver", string(cfg.Driver)),
		gecho.Field("host", cfg.Host),
		gecho.Field("database", cfg.Name),
	)

	return db, nil
}

func openSQL(cfg *structs.DatabaseConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case structs.DriverPg:
		connector := pgdriver.NewConnector(
			pgdriver.WithAddr(net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))),
			pgdriver.WithUser(cfg.User),
			pgdriver.WithPassword(cfg.Password),
			pgdriver.WithDatabase(cfg.Name),
			pgdriver.WithInsecure(cfg.SSLMode == "" || cfg.SSLMode == "disable"),
			pgdriver.WithReadTimeout(cfg.ReadTimeout),
			pgdriver.WithWriteTimeout(cfg.WriteTimeout),
		)
		return sql.OpenDB(connector), nil
	case structs.DriverPgx, "":
		connCfg, err := pgx.ParseConfig(DSN(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}
		return stdlib.OpenDB(*connCfg), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// DSN renders the connection settings as a postgres URL.
func DSN(cfg *structs.DatabaseConfig) string {
	query := url.Values{}
	if cfg.SSLMode != "" {
		query.Set("sslmode", cfg.SSLMode)
	}
	if cfg.ReadTimeout > 0 {
		query.Set("connect_timeout", strconv.Itoa(int(cfg.ReadTimeout.Seconds())))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// Initialize sets up the global database instance
func Initialize(ctx context.Context, cfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	db, err := Connect(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	instance = db
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// GetStats returns connection pool statistics for monitoring
func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}

// connectionHealthHook implements bun.QueryHook to flag slow queries and
// dropped connections
type connectionHealthHook struct {
	logger    *gecho.Logger
	slowQuery time.Duration
}

func (h *connectionHealthHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *connectionHealthHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if h.slowQuery > 0 && duration > h.slowQuery {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err == nil || errors.Is(event.Err, sql.ErrNoRows) {
		return
	}
	if isConnectionError(event.Err) {
		h.logger.Error("Database connection error - connection may have been closed by server",
			gecho.Field("error", event.Err),
			gecho.Field("query", event.Query),
		)
	}
}
