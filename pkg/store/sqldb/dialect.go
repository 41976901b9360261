package sqldb

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type Dialect string

const (
	DialectDuckDB   Dialect = "duckdb"
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const pgUniqueViolation = "23505"

// Rebind rewrites "?" placeholders into the dialect's positional form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsUniqueViolation reports whether err was raised by a UNIQUE constraint.
func (d Dialect) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	switch d {
	case DialectPostgres:
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	case DialectSQLite:
		return strings.Contains(err.Error(), "UNIQUE constraint failed")
	default:
		msg := err.Error()
		return strings.Contains(msg, "Duplicate key") || strings.Contains(msg, "violates unique constraint")
	}
}
