// Package db provides the database configuration and connection setup.
package db

import (
	"fmt"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	profileentity "todo_backend/internal/feature/accounts/domain/entity"
	taskentity "todo_backend/internal/feature/tasks/domain/entity"
)

// Config holds the database connection settings.
// URL, when set, is used verbatim and the discrete fields are ignored.
type Config struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// LoadConfigFromEnv reads the database configuration from the
// environment: DATABASE_URL, or the discrete DB_* variables.
func LoadConfigFromEnv() Config {
	return Config{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}
}

// BuildDSN returns the postgres DSN for the given configuration.
// DATABASE_URL takes precedence over the discrete fields.
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// Opener opens a gorm.DB for a DSN. Extracted so ConnectWithRetry can be
// tested without a live database.
type Opener func(dsn string) (*gorm.DB, error)

// OpenPostgres is the production Opener.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry keeps trying to open the database until it succeeds
// or the timeout elapses. The database container often comes up after
// the server does.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", timeout, err)
		}
		time.Sleep(3 * time.Second)
	}
}

// Open connects to the configured database with a 60 second retry window.
func Open(cfg Config) (*gorm.DB, error) {
	return ConnectWithRetry(BuildDSN(cfg), 60*time.Second, OpenPostgres)
}

// Migrate creates or updates the schema for all entities. Idempotent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&profileentity.Profile{}, &taskentity.Task{})
}

// Drop tears down the schema, tasks first to respect the foreign key.
func Drop(db *gorm.DB) error {
	return db.Migrator().DropTable(&taskentity.Task{}, &profileentity.Profile{})
}
