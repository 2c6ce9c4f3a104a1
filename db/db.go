// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/listen/cliparse"
)

// Open connects to the configured database, applies pool settings and
// verifies the connection. The returned handle is meant to live for the
// whole process and be closed at shutdown.
func Open(ctx context.Context, cfg cliparse.Config) (*sql.DB, Dialect, error) {
	driver, dsn, dialect := driverFor(cfg)

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("open %s: %w", driver, err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, dialect, fmt.Errorf("ping %s: %w", driver, err)
	}

	return conn, dialect, nil
}

func driverFor(cfg cliparse.Config) (driver, dsn string, dialect Dialect) {
	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		return "postgres", cfg.DatabaseURL, Postgres
	case cliparse.DatabasePGX:
		return "pgx", cfg.DatabaseURL, Postgres
	default:
		return "sqlite", SQLiteDSN(cfg.DatabaseURL), SQLite
	}
}

// SQLiteDSN turns a file path (or ":memory:") into a modernc.org/sqlite
// DSN with foreign keys enforced on every connection.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
