package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/persistence"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/test/helpers"
)

func savedBuild(t *testing.T, shipID, name string) *loadout.SavedBuild {
	t.Helper()
	build, err := outfitting.NewBuild(helpers.NewTestCatalog(t), shipID)
	require.NoError(t, err)
	doc := loadout.NewDocument(name, build, helpers.NewFixedClock())
	return &loadout.SavedBuild{
		ShipID:    shipID,
		Name:      name,
		Code:      doc.Code,
		Document:  doc,
		CreatedAt: helpers.FixedTime,
		UpdatedAt: helpers.FixedTime,
	}
}

func TestSavedBuildRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSavedBuildRepository(db)
	build := savedBuild(t, "sidewinder", "Starter")

	// Act - Save
	err := repo.Save(context.Background(), build)

	// Assert
	require.NoError(t, err)

	// Act - FindByName
	found, err := repo.FindByName(context.Background(), "sidewinder", "Starter")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, found.ID)
	assert.Equal(t, build.ShipID, found.ShipID)
	assert.Equal(t, build.Name, found.Name)
	assert.Equal(t, build.Code, found.Code)
	require.NotNil(t, found.Document)
	assert.Equal(t, build.Document.Code, found.Document.Code)
	assert.Equal(t, build.Document.Timestamp, found.Document.Timestamp)
	assert.Len(t, found.Document.Slots, len(build.Document.Slots))
	assert.True(t, found.CreatedAt.Equal(helpers.FixedTime))
}

func TestSavedBuildRepository_SaveWithoutDocument(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSavedBuildRepository(db)
	build := savedBuild(t, "sidewinder", "Bare")
	build.Document = nil

	// Act
	require.NoError(t, repo.Save(context.Background(), build))
	found, err := repo.FindByName(context.Background(), "sidewinder", "Bare")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, found.Document)
	assert.Equal(t, build.Code, found.Code)
}

func TestSavedBuildRepository_SaveReplacesByShipAndName(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSavedBuildRepository(db)
	ctx := context.Background()

	first := savedBuild(t, "anaconda", "Combat")
	require.NoError(t, repo.Save(ctx, first))
	original, err := repo.FindByName(ctx, "anaconda", "Combat")
	require.NoError(t, err)

	replacement := savedBuild(t, "anaconda", "Combat")
	replacement.Code = "1.anaconda.replaced."
	replacement.CreatedAt = helpers.FixedTime.Add(time.Hour)
	replacement.UpdatedAt = helpers.FixedTime.Add(time.Hour)

	// Act
	err = repo.Save(ctx, replacement)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByName(ctx, "anaconda", "Combat")
	require.NoError(t, err)
	assert.Equal(t, original.ID, found.ID)
	assert.Equal(t, "1.anaconda.replaced.", found.Code)
	assert.True(t, found.CreatedAt.Equal(helpers.FixedTime), "creation time is kept")
	assert.True(t, found.UpdatedAt.Equal(helpers.FixedTime.Add(time.Hour)))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSavedBuildRepository_Listing(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSavedBuildRepository(db)
	ctx := context.Background()
	for _, b := range []struct{ ship, name string }{
		{"sidewinder", "Zephyr"},
		{"anaconda", "Trader"},
		{"sidewinder", "Alpha"},
		{"anaconda", "Explorer"},
	} {
		require.NoError(t, repo.Save(ctx, savedBuild(t, b.ship, b.name)))
	}

	// Act
	sidewinders, err := repo.ListByShip(ctx, "sidewinder")
	require.NoError(t, err)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	none, err := repo.ListByShip(ctx, "cobra_mk_iii")
	require.NoError(t, err)

	// Assert
	var names []string
	for _, b := range sidewinders {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Alpha", "Zephyr"}, names)

	var keys []string
	for _, b := range all {
		keys = append(keys, b.ShipID+"/"+b.Name)
	}
	assert.Equal(t, []string{"anaconda/Explorer", "anaconda/Trader", "sidewinder/Alpha", "sidewinder/Zephyr"}, keys)

	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSavedBuildRepository_Delete(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSavedBuildRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, savedBuild(t, "sidewinder", "Starter")))

	// Act
	err := repo.Delete(ctx, "sidewinder", "Starter")

	// Assert
	require.NoError(t, err)
	_, err = repo.FindByName(ctx, "sidewinder", "Starter")
	var notFound *loadout.ErrSavedBuildNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestSavedBuildRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSavedBuildRepository(db)

	// Act
	_, findErr := repo.FindByName(context.Background(), "sidewinder", "Missing")
	deleteErr := repo.Delete(context.Background(), "sidewinder", "Missing")

	// Assert
	var notFound *loadout.ErrSavedBuildNotFound
	require.True(t, errors.As(findErr, &notFound))
	assert.Equal(t, "Missing", notFound.Name)
	assert.True(t, errors.As(deleteErr, &notFound))
	assert.Contains(t, findErr.Error(), "saved build not found")
}
