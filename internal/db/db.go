package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/landing/internal/models"
)

// ErrNotInitialized is returned by services used before Initialize/Open
var ErrNotInitialized = errors.New("database not initialized")

var DB *gorm.DB

// Initialize opens the database at dbPath (or the default location when empty)
// and stores the connection in DB
func Initialize(dbPath string) error {
	if dbPath == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		dbPath = defaultPath
	}

	// In-memory databases have no directory to create
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := Open(dbPath)
	if err != nil {
		return err
	}

	DB = conn
	return nil
}

// Open connects to a SQLite file and runs migrations without touching DB
func Open(dbPath string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return conn, nil
}

// DefaultPath returns the path to the SQLite database file
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".landing", "landing.db"), nil
}

// runMigrations creates/updates the database schema
func runMigrations(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Setting{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		DB = nil
		return sqlDB.Close()
	}
	return nil
}
