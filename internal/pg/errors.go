package pg

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/schema"
)

//nolint:gochecknoglobals // stateless, shared by every error path
var queryFormatter = schema.NewFormatter(pgdialect.New())

// IsNotFound reports whether err means that no rows were found.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ConstraintName returns the violated constraint of a PostgreSQL error, or "".
// err must be the driver error as bun returns it: errx wrapping hides the
// *pgconn.PgError.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// GetPgErrorDetails collects the query text and PostgreSQL error fields of
// err for errx.WithDetails. query is any bun query; nil omits the text.
func GetPgErrorDetails(err error, query schema.QueryAppender) errx.D {
	details := make(errx.D)
	if q := safeQueryString(query); q != "" {
		details["query"] = strings.ReplaceAll(q, `"`, ``)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return details
	}

	details["pg.code"] = pgErr.Code
	details["pg.severity"] = pgErr.Severity
	details["pg.message"] = pgErr.Message
	details["pg.detail"] = pgErr.Detail
	details["pg.hint"] = pgErr.Hint
	details["pg.table"] = pgErr.TableName
	details["pg.column"] = pgErr.ColumnName
	details["pg.constraint"] = pgErr.ConstraintName

	return details
}

// safeQueryString renders query with the PostgreSQL formatter. Queries that
// fail or panic while rendering yield "".
func safeQueryString(query schema.QueryAppender) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	if query == nil {
		return ""
	}

	b, err := query.AppendQuery(queryFormatter, nil)
	if err != nil {
		return ""
	}
	return string(b)
}
