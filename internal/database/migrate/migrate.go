// Package migrate provides database schema management.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
	appConfig "github.com/festy23/fixthisbug/internal/config"
	dbConfig "github.com/festy23/fixthisbug/internal/database/config"
	submissionModel "github.com/festy23/fixthisbug/internal/submission/model"
	subscriberModel "github.com/festy23/fixthisbug/internal/subscriber/model"
)

// GetMigrationsPath returns the path to the SQL migrations directory.
func GetMigrationsPath() string {
	return appConfig.GetEnv("MIGRATIONS_PATH", "migrations")
}

// Models lists every persisted model.
func Models() []any {
	return []any{
		&catalogModel.Repository{},
		&subscriberModel.Subscriber{},
		&submissionModel.BugSubmission{},
	}
}

// Apply brings the schema up to date for the given driver: SQL migrations
// for postgres, AutoMigrate for sqlite.
func Apply(db *gorm.DB, driver string) error {
	switch driver {
	case dbConfig.DriverPostgres:
		return Migrate(db)
	case dbConfig.DriverSQLite:
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unsupported driver for migrations: %q", driver)
	}
}

// AutoMigrate creates or updates tables from the GORM models.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

// Migrate applies the SQL migrations from the migrations directory using golang-migrate.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	migrationsPath, err := filepath.Abs(GetMigrationsPath())
	if err != nil {
		return fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}
	if _, statErr := os.Stat(migrationsPath); os.IsNotExist(statErr) {
		return fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
