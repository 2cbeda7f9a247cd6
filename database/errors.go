package database

import (
	"coffeeshop_server/lib"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	codeForeignKeyViolation = "23503"
)

// SQLState extracts the SQLSTATE code from either driver's error type.
func SQLState(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	return ""
}

// MapError translates a persistence failure into the domain taxonomy.
// Foreign key violations become KeyNotPresent, everything else DataBase.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if SQLState(err) == codeForeignKeyViolation {
		return lib.KeyNotPresent(err)
	}
	return lib.DataBase(err)
}
