// Package conn opens and verifies the upstream database connection the tool
// is configured against. Generation itself never queries the database; the
// handle exists so a misconfigured environment fails before any file is
// written, and so the connection teardown is checked.
package conn

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/seqsquash/seqsquash/internal/sqerr"
)

// Handle is an open, verified upstream connection.
type Handle struct {
	db     *sql.DB
	driver string
	url    string
}

// DriverFor maps a database URL to a registered driver and its DSN.
// Postgres URLs pass through unchanged; everything else is treated as an
// SQLite path.
func DriverFor(url string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres", url
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite", strings.TrimPrefix(url, "sqlite://")
	default:
		return "sqlite", url
	}
}

// Open connects to the configured database and verifies the connection with
// a ping.
func Open(ctx context.Context, url string) (*Handle, error) {
	if url == "" {
		return nil, sqerr.New(sqerr.ErrDBConnection, "database URL is not configured")
	}

	driver, dsn := DriverFor(url)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, sqerr.Wrap(sqerr.ErrDBConnection, err, "cannot open database").
			With("driver", driver)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, sqerr.Wrap(sqerr.ErrDBConnection, err, "cannot reach database").
			With("driver", driver)
	}

	return &Handle{db: db, driver: driver, url: url}, nil
}

// DB returns the underlying handle.
func (h *Handle) DB() *sql.DB {
	return h.db
}

// Driver returns the resolved driver name.
func (h *Handle) Driver() string {
	return h.driver
}

// Close tears the connection down. A close failure is a real error: it can
// hide a broken pool or a half-finished server-side state, so callers must
// treat it as fatal rather than ignore it.
func (h *Handle) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	if err := h.db.Close(); err != nil {
		return sqerr.Wrap(sqerr.ErrDBClose, err, "closing database connection failed").
			With("driver", h.driver)
	}
	return nil
}
