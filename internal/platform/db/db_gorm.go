// Package db opens the local SQLite database that backs the on-disk response cache.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coinstats/internal/platform/cache"
)

// DefaultPath is the cache database file used when none is configured.
const DefaultPath = "coin_cache.db"

// Config holds the cache database settings.
type Config struct {
	Path        string // SQLite file path
	BusyTimeout int    // milliseconds to wait on a locked database
}

// Opener opens a gorm connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfig reads the cache database settings from viper.
func LoadConfig() Config {
	cfg := Config{
		Path:        viper.GetString("cache.sqlite_path"),
		BusyTimeout: viper.GetInt("cache.sqlite_busy_timeout"),
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5000
	}
	return cfg
}

// BuildDSN builds the go-sqlite3 connection string for cfg.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", cfg.Path, cfg.BusyTimeout)
}

// SQLiteOpener opens dsn with the gorm SQLite driver and gorm's own logging silenced.
func SQLiteOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// OpenDB opens the cache database and migrates the response cache table.
func OpenDB(cfg Config, open Opener) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
		}
	}

	db, err := open(BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open cache db %s: %w", cfg.Path, err)
	}
	if err := cache.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	slog.Debug("cache database ready", "path", cfg.Path)
	return db, nil
}
