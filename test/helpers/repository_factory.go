package helpers

import (
	"gorm.io/gorm"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/persistence"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB             *gorm.DB
	SavedBuildRepo loadout.SavedBuildRepository
}

// NewTestRepositories creates all real repository instances using shared test DB
func NewTestRepositories() *TestRepositories {
	db := SharedTestDB

	return &TestRepositories{
		DB:             db,
		SavedBuildRepo: persistence.NewGormSavedBuildRepository(db),
	}
}
