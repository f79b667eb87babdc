package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hopeIsCo0l/AnuTest/internal/database/migration"

	"go.uber.org/zap"
)

func RunMigrations(dbURL, migrationsDir string, log *zap.Logger) error {
	if dbURL == "" {
		return errors.New("AUDIT_DATABASE_URL is not set")
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	return migration.Migrate(dbURL, "file://"+absPath, true, log)
}
