package database

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type txKey struct{}

// beginError marks a failure to open the transaction, before any statement ran.
type beginError struct{ err error }

func (e *beginError) Error() string { return "failed to begin transaction: " + e.err.Error() }
func (e *beginError) Unwrap() error { return e.err }

// Conn returns the transaction bound to ctx, or the pool when there is none.
func (db *DB) Conn(ctx context.Context) bun.IDB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db.DB
}

// TxFromContext returns the transaction RunInTx stored in ctx.
func TxFromContext(ctx context.Context) (bun.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	return tx, ok
}

// RunInTx runs fn inside one transaction. Every query issued through
// db.Conn(ctx) takes part in it. Nested calls join the outer transaction.
// Serialization failures, deadlocks and failed BEGINs retry the whole unit.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	if db.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.queryTimeout)
		defer cancel()
	}

	cfg := db.retry
	attempt := 0
	var lastErr error
	err := RetryWithBackoff(ctx, cfg, func() error {
		attempt++
		lastErr = db.runOnce(ctx, fn)
		if lastErr != nil && !isTxRetryable(lastErr) {
			return &permanentError{err: lastErr}
		}
		if lastErr != nil && attempt < cfg.MaxAttempts {
			db.logger.Warn("Retrying transaction", gecho.Field("attempt", attempt), gecho.Field("error", lastErr))
		}
		return lastErr
	})

	var perm *permanentError
	if errors.As(err, &perm) {
		return perm.err
	}
	return err
}

func (db *DB) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &beginError{err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			db.logger.Error(fmt.Sprintf("PANIC RECOVERED: %v", p),
				gecho.Field("panic_value", p),
				gecho.Field("stack_trace", string(debug.Stack())))
			_ = tx.Rollback()
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			_ = tx.Rollback()
		} else if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

// permanentError stops RetryWithBackoff without hiding the cause.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func isTxRetryable(err error) bool {
	var be *beginError
	if errors.As(err, &be) {
		return isRetryableError(be.err)
	}
	switch SQLState(err) {
	case "40001", "40P01":
		return true
	}
	return false
}
