package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/persistence"
	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/database"
)

// SharedTestDB is the in-memory store every BDD scenario runs against.
// TestMain opens it once; scenarios empty it with TruncateAllTables.
var SharedTestDB *gorm.DB

// truncated lists the models wiped between scenarios
var truncated = []interface{}{
	&persistence.SavedBuildModel{},
}

// InitializeSharedTestDB opens and migrates SharedTestDB
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables deletes every saved build row
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	for _, model := range truncated {
		if err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to truncate %T: %w", model, err)
		}
	}
	return nil
}

// CloseSharedTestDB releases SharedTestDB. Safe to call when it was never opened.
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	err := database.Close(SharedTestDB)
	SharedTestDB = nil
	return err
}
