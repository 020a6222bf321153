// Package database opens the process-wide connection pool and applies the embedded
// schema migrations. Postgres (lib/pq) is the production store; SQLite (modernc) serves
// local runs and integration tests.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // goqu dialect
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // goqu dialect
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

// ErrUnsupportedURL is returned for database URLs with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")

// Driver names a supported SQL backend. The value is the database/sql driver name.
type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// Dialect returns the goqu dialect name for the driver.
func (d Driver) Dialect() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

// PoolConfig bounds the connection pool. Requests beyond MaxOpenConns wait for a free
// connection until their context is done.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DB is the shared connection pool together with the backend it talks to.
type DB struct {
	*sqlx.DB
	Driver Driver
}

// New wraps an already opened pool.
func New(db *sqlx.DB, driver Driver) *DB {
	return &DB{DB: db, Driver: driver}
}

// Builder returns a goqu query builder for this backend's dialect.
func (db *DB) Builder() goqu.DialectWrapper {
	return goqu.Dialect(db.Driver.Dialect())
}

// ParseURL maps a DATABASE_URL onto a driver and its DSN.
// postgres:// and postgresql:// select Postgres; sqlite://<path> and file:<path> select SQLite.
func ParseURL(url string) (Driver, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Postgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return SQLite, withSQLitePragmas("file:" + strings.TrimPrefix(url, "sqlite://")), nil
	case strings.HasPrefix(url, "file:"):
		return SQLite, withSQLitePragmas(url), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, redact(url))
	}
}

func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i+3] + "..."
	}
	return "..."
}

// Open creates the connection pool for url, applies pool limits and verifies the
// connection. SQLite pools hold a single connection so writers are serialized.
func Open(ctx context.Context, url string, pool PoolConfig) (*DB, error) {
	driver, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == SQLite {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(pool.MaxOpenConns)
		conn.SetMaxIdleConns(pool.MaxIdleConns)
		conn.SetConnMaxLifetime(pool.ConnMaxLifetime)
		conn.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(conn, driver), nil
}
