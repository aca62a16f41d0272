package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/persistence"
	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/config"
	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/database"
)

func TestNewConnection_SQLiteFile(t *testing.T) {
	// Arrange
	cfg := &config.DatabaseConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "coriolis.db")}

	// Act
	db, err := database.NewConnection(cfg)
	require.NoError(t, err)
	defer database.Close(db)
	err = database.AutoMigrate(db)

	// Assert
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&persistence.SavedBuildModel{}))
	assert.FileExists(t, cfg.Path)
}

func TestNewConnection_UnsupportedType(t *testing.T) {
	// Act
	db, err := database.NewConnection(&config.DatabaseConfig{Type: "mysql"})

	// Assert
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestNewTestConnection_IsMigrated(t *testing.T) {
	// Act
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	defer database.Close(db)

	// Assert
	assert.True(t, db.Migrator().HasTable("saved_builds"))
}
