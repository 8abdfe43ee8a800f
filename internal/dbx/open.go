package dbx

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend. The value doubles as the goose
// dialect name.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// DetectDialect picks the dialect from the DSN scheme: postgres:// and
// postgresql:// select PostgreSQL, everything else (file:, sqlite:, bare
// paths, :memory:) selects SQLite.
func DetectDialect(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// sqliteDSN strips an optional sqlite:// scheme and makes sure foreign keys
// are enforced on every pooled connection, which ON DELETE CASCADE relies on.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Open opens a connection pool for dsn and reports the detected dialect.
// The pool is verified lazily by the first query; callers that want to fail
// fast should Ping it.
func Open(dsn string) (*sql.DB, Dialect, error) {
	dialect := DetectDialect(dsn)

	target := dsn
	if dialect == DialectSQLite {
		target = sqliteDSN(dsn)
	}

	db, err := sql.Open(dialect.DriverName(), target)
	if err != nil {
		return nil, dialect, fmt.Errorf("db open error: %w", err)
	}

	if dialect == DialectSQLite {
		// sqlite serializes writers anyway; a single connection avoids
		// SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	}

	return db, dialect, nil
}
