// Package database opens the stores behind the persistent key store
// backends: Postgres through lib/pq, SQLite files, and Redis.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/pageza/recipebrowser/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents the database connection
type DB struct {
	*sql.DB
}

// New opens and pings a Postgres connection pool
func New(cfg *config.Config) (*DB, error) {
	slog.Info("connecting to database", "component", "database",
		"host", cfg.DBHost, "port", cfg.DBPort, "user", cfg.DBUser)

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	slog.Info("successfully connected to database", "component", "database")
	return &DB{db}, nil
}

// Gorm wraps the pool in a GORM handle
func (db *DB) Gorm() (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over postgres: %w", err)
	}
	return gdb, nil
}

// OpenSQLite opens (creating if needed) a SQLite database file. ":memory:"
// yields a private in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	// SQLite serialises writers; one connection also keeps :memory: consistent
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// Open returns a migrated GORM handle for the configured SQL backend
func Open(cfg *config.Config) (*gorm.DB, error) {
	var (
		gdb *gorm.DB
		err error
	)

	switch cfg.KeyStoreBackend {
	case config.BackendPostgres:
		pool, perr := New(cfg)
		if perr != nil {
			return nil, perr
		}
		gdb, err = pool.Gorm()
	case config.BackendSQLite:
		gdb, err = OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("key store backend %q is not SQL", cfg.KeyStoreBackend)
	}
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}
