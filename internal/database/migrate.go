package database

import (
	"fmt"
	"log/slog"

	"github.com/pageza/recipebrowser/internal/model"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. Both dialects use GORM
// auto-migration; the schema is a single table.
func RunMigrations(db *gorm.DB) error {
	slog.Info("running migrations", "component", "database", "dialect", db.Dialector.Name())

	if err := db.AutoMigrate(&model.Credential{}); err != nil {
		return fmt.Errorf("failed to migrate credentials table: %w", err)
	}
	return nil
}
