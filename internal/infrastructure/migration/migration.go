package migration

import (
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"sharayeh/internal/shared/logger"
)

// Manager runs goose SQL migrations against the primary database.
type Manager struct {
	scriptsPath string
}

// NewManager creates a migration manager for the given scripts directory.
func NewManager(scriptsPath string) *Manager {
	return &Manager{scriptsPath: scriptsPath}
}

// Up applies all pending migrations.
func (m *Manager) Up(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(sqlDB, m.scriptsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations applied", "scripts_path", m.scriptsPath)
	return nil
}

// Down rolls back the given number of migrations.
func (m *Manager) Down(db *gorm.DB, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, m.scriptsPath); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
	}

	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

// Status prints the migration status.
func (m *Manager) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(sqlDB, m.scriptsPath)
}

// Version returns the current migration version.
func (m *Manager) Version(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.GetDBVersion(sqlDB)
}
