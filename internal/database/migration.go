package database

import (
	"fmt"
	"path/filepath"

	"inventory/internal/database/migration"

	"go.uber.org/zap"
)

func RunMigrations(dbURL string, migrationsDir string, log *zap.Logger) error {
	if dbURL == "" {
		return fmt.Errorf("database URL is not set")
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	migrationsURL := "file://" + absPath

	return migration.Migrate(dbURL, migrationsURL, true, log)
}
