// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

An optional .env file is read first so its values act as environment
defaults:

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}

# CLI Flags

	-p               Server port
	-d               Database URL (sqlite file path or postgres URL)
	-t               Database type: sqlite, postgres (lib/pq) or pgx
	-assets          Directory with htmx.min.js, Satisfy-Regular.woff2, favicon.ico
	-seed            Insert an example runbook into an empty database
	-max-open-conns  Pool size
	-max-idle-conns  Idle pool size

# Environment Variables

Flags fall back to environment variables:

	PORT                     → -p (default 8080)
	DATABASE_URL             → -d (default listen.db for sqlite)
	DATABASE_TYPE            → -t (default sqlite)
	ASSETS_DIR               → -assets (default .)
	SEED                     → -seed
	DATABASE_MAX_OPEN_CONNS  → -max-open-conns (default 10)
	DATABASE_MAX_IDLE_CONNS  → -max-idle-conns (default 5)
	DATABASE_CONN_MAX_LIFETIME  (default 30m)
	DATABASE_PING_TIMEOUT       (default 2s)
	LOG_LEVEL                   (default info)

CLI flags take precedence over environment variables. SQLite always
runs with a single open connection.

# Validation

ParseFlags returns an error if a postgres database is selected without
a URL, if the database type is unknown, or if pool settings are
inconsistent.
*/
package cliparse
