// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database types accepted by -t / DATABASE_TYPE
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabasePGX      = "pgx"
)

const defaultSQLitePath = "listen.db"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AssetsDir    string
	Seed         bool
	LogLevel     slog.Level

	// Pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills in values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("listen", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.AssetsDir, "assets", "", "Directory holding htmx.min.js, the webfont and favicon.ico")
	fs.BoolVar(&cfg.Seed, "seed", false, "Insert an example runbook into an empty database")
	fs.IntVar(&cfg.MaxOpenConns, "max-open-conns", 0, "Maximum open database connections")
	fs.IntVar(&cfg.MaxIdleConns, "max-idle-conns", -1, "Maximum idle database connections")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 8080)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabasePGX:
	default:
		return Config{}, fmt.Errorf("unknown database type %q (want sqlite, postgres or pgx)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DatabaseSQLite {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if cfg.AssetsDir == "" {
		cfg.AssetsDir = os.Getenv("ASSETS_DIR")
		if cfg.AssetsDir == "" {
			cfg.AssetsDir = "."
		}
	}

	if !cfg.Seed {
		seed, err := envBool("SEED", false)
		if err != nil {
			return Config{}, err
		}
		cfg.Seed = seed
	}

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL env variable: %w", err)
		}
	}

	var err error
	if cfg.MaxOpenConns == 0 {
		if cfg.MaxOpenConns, err = envInt("DATABASE_MAX_OPEN_CONNS", 10); err != nil {
			return Config{}, err
		}
	}
	if cfg.MaxIdleConns < 0 {
		if cfg.MaxIdleConns, err = envInt("DATABASE_MAX_IDLE_CONNS", 5); err != nil {
			return Config{}, err
		}
	}
	if cfg.ConnMaxLifetime, err = envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.PingTimeout, err = envDuration("DATABASE_PING_TIMEOUT", 2*time.Second); err != nil {
		return Config{}, err
	}

	// SQLite serializes writers; one connection also keeps in-memory databases shared
	if cfg.DatabaseType == DatabaseSQLite {
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the pool settings
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.MaxOpenConns < 1 {
		return errors.New("DATABASE_MAX_OPEN_CONNS must be >= 1")
	}
	if c.MaxIdleConns < 0 {
		return errors.New("DATABASE_MAX_IDLE_CONNS must be >= 0")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("DATABASE_MAX_IDLE_CONNS must be <= DATABASE_MAX_OPEN_CONNS")
	}
	if c.ConnMaxLifetime < 0 {
		return errors.New("DATABASE_CONN_MAX_LIFETIME must be >= 0")
	}
	if c.PingTimeout <= 0 {
		return errors.New("DATABASE_PING_TIMEOUT must be positive")
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return i, nil
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", key)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return d, nil
}
