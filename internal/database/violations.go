package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// see https://www.postgresql.org/docs/16/errcodes-appendix.html
const (
	PgNotNullViolationErrCode    = "23502"
	PgForeignKeyViolationErrCode = "23503"
	PgUniqueViolationErrCode     = "23505"
	PgCheckViolationErrCode      = "23514"
)

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, PgForeignKeyViolationErrCode)
}

// IsConstraintViolation reports integrity violations caused by the input
// rather than by the database being unavailable.
func IsConstraintViolation(err error) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return false
	}
	switch pgError.Code {
	case PgNotNullViolationErrCode, PgForeignKeyViolationErrCode, PgUniqueViolationErrCode, PgCheckViolationErrCode:
		return true
	default:
		return false
	}
}

func hasCode(err error, code string) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == code
}
