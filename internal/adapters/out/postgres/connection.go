package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectionConfig holds what Open needs to reach the database and how long
// to keep trying at startup.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	RetryCount int
	RetryDelay time.Duration
}

// DSN renders the config as a libpq-style connection string.
func (c ConnectionConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Open connects to Postgres with a bounded retry loop. The database routinely
// comes up after the service in containerized deployments, so startup waits
// out RetryCount attempts before giving up.
func Open(cfg ConnectionConfig, logger *slog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	attempts := cfg.RetryCount
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			return db, nil
		}

		logger.Warn("database connection failed",
			"attempt", attempt,
			"of", attempts,
			"error", err,
		)

		if attempt < attempts {
			time.Sleep(cfg.RetryDelay)
		}
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}
