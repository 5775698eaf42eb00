package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/database"
	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/testdb"
)

func TestNew(t *testing.T) {
	_, err := database.New(config.DatabaseConfig{Driver: "mysql"}, zap.NewNop())
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}

func TestRunMigrations(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		db := testdb.SQLite(t)

		assert.True(t, db.Migrator().HasTable(&model.CatalogRecipe{}))
		assert.True(t, db.Migrator().HasTable(&model.Slot{}))
		assert.NoError(t, database.RunMigrations(db, zap.NewNop()), "migrations are repeatable")
		assert.NoError(t, database.HealthCheck(context.Background(), db))
	})

	t.Run("postgres", func(t *testing.T) {
		db := testdb.Postgres(t)

		var applied []string
		require.NoError(t, db.Raw("SELECT name FROM migrations ORDER BY name").Scan(&applied).Error)
		assert.Equal(t, []string{"001_catalog_cuisine_index.sql", "002_catalog_embedding_index.sql"}, applied)

		require.NoError(t, database.RunMigrations(db, zap.NewNop()))
		var count int64
		require.NoError(t, db.Raw("SELECT COUNT(*) FROM migrations").Scan(&count).Error)
		assert.EqualValues(t, 2, count)
	})
}
