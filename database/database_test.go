package database

import (
	"coffeeshop_server/lib"
	"coffeeshop_server/structs"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	fk := fmt.Errorf("failed to execute insert query: %w", &pgconn.PgError{Code: "23503"})
	assert.Equal(t, lib.KindKeyNotPresent, lib.KindOf(MapError(fk)))
	assert.ErrorIs(t, MapError(fk), lib.ErrKeyNotPresent)

	unique := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, lib.KindDataBase, lib.KindOf(MapError(unique)))

	plain := errors.New("boom")
	assert.Equal(t, lib.KindDataBase, lib.KindOf(MapError(plain)))

	domain := lib.OrderNotFound(3)
	assert.Same(t, domain, MapError(domain))

	assert.NoError(t, MapError(nil))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"read only transaction", &pgconn.PgError{Code: "25006"}, false},
		{"deadline", context.DeadlineExceeded, false},
		{"eof", io.ErrUnexpectedEOF, true},
		{"connection refused text", errors.New("dial tcp: connection refused"), true},
		{"domain error", lib.CoffeeNotFound(1), false},
		{"database wrapped serialization", lib.DataBase(&pgconn.PgError{Code: "40001"}), true},
		{"permanent", &permanentError{err: &pgconn.PgError{Code: "40001"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 4, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2, EnableRetry: true}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return &pgconn.PgError{Code: "23503"}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)

	calls = 0
	err = RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestIsTxRetryable(t *testing.T) {
	assert.True(t, isTxRetryable(lib.DataBase(&pgconn.PgError{Code: "40001"})))
	assert.True(t, isTxRetryable(&beginError{err: io.EOF}))
	assert.False(t, isTxRetryable(lib.DataBase(io.EOF)))
	assert.False(t, isTxRetryable(lib.OrderNotFound(1)))
}

func TestDSN(t *testing.T) {
	dsn := DSN(&structs.DatabaseConfig{
		Host:        "db",
		Port:        5433,
		User:        "barista",
		Password:    "p@ss word",
		Name:        "coffeeshop",
		SSLMode:     "disable",
		ReadTimeout: 5 * time.Second,
	})
	assert.Equal(t, "postgres://barista:p%40ss%20word@db:5433/coffeeshop?connect_timeout=5&sslmode=disable", dsn)
}

func TestOpenSQLRejectsUnknownDriver(t *testing.T) {
	_, err := openSQL(&structs.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset int
		wantOK     bool
	}{
		{"first page", 0, 10, 0, true},
		{"third page", 2, 25, 50, true},
		{"largest fitting", math.MaxInt / 4, 4, (math.MaxInt / 4) * 4, true},
		{"wraps to zero", math.MaxInt/4 + 1, 4, 0, false},
		{"wraps negative", math.MaxInt/2 + 1, 3, 0, false},
		{"max page", math.MaxInt, 1, math.MaxInt, true},
		{"max page limit two", math.MaxInt, 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, ok := PageOffset(tt.page, tt.limit)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
