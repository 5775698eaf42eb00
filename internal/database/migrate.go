package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/dishcovery/backend/internal/model"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations creates the schema. Tables come from gorm auto-migration;
// on postgres the vector extension is installed first and the SQL files in
// migrations/ are applied once each, in name order.
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	postgres := db.Dialector.Name() == "postgres"

	if postgres {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(&model.CatalogRecipe{}, &model.Slot{}); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	if !postgres {
		logger.Info("using gorm auto-migration only", zap.String("dialect", db.Dialector.Name()))
		return nil
	}

	return applySQLMigrations(db, logger)
}

func applySQLMigrations(db *gorm.DB, logger *zap.Logger) error {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		var count int64
		if err := db.Table("migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			logger.Debug("skipping migration", zap.String("name", name))
			continue
		}

		content, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		if err := db.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}

		if err := db.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}

		logger.Info("applied migration", zap.String("name", name))
	}

	return nil
}
