package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
)

// GormSavedBuildRepository implements SavedBuildRepository using GORM
type GormSavedBuildRepository struct {
	db *gorm.DB
}

// NewGormSavedBuildRepository creates a new GORM saved build repository
func NewGormSavedBuildRepository(db *gorm.DB) *GormSavedBuildRepository {
	return &GormSavedBuildRepository{db: db}
}

// Save upserts a build by ship and name. A new build gets a fresh ID; an
// existing one keeps its ID and creation time.
func (r *GormSavedBuildRepository) Save(ctx context.Context, build *loadout.SavedBuild) error {
	model, err := r.buildToModel(build)
	if err != nil {
		return fmt.Errorf("failed to convert saved build to model: %w", err)
	}
	if model.ID == "" {
		model.ID = uuid.New().String()
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ship_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "document", "updated_at"}),
		}).
		Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save build: %w", result.Error)
	}

	return nil
}

// FindByName retrieves a saved build by ship and name
func (r *GormSavedBuildRepository) FindByName(ctx context.Context, shipID, name string) (*loadout.SavedBuild, error) {
	var model SavedBuildModel
	result := r.db.WithContext(ctx).Where("ship_id = ? AND name = ?", shipID, name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &loadout.ErrSavedBuildNotFound{ShipID: shipID, Name: name}
		}
		return nil, fmt.Errorf("failed to find saved build: %w", result.Error)
	}

	return r.modelToBuild(&model)
}

// ListByShip retrieves all saved builds of a ship ordered by name
func (r *GormSavedBuildRepository) ListByShip(ctx context.Context, shipID string) ([]*loadout.SavedBuild, error) {
	var models []SavedBuildModel
	result := r.db.WithContext(ctx).Where("ship_id = ?", shipID).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list saved builds: %w", result.Error)
	}
	return r.modelsToBuilds(models)
}

// ListAll retrieves every saved build ordered by ship and name
func (r *GormSavedBuildRepository) ListAll(ctx context.Context) ([]*loadout.SavedBuild, error) {
	var models []SavedBuildModel
	result := r.db.WithContext(ctx).Order("ship_id").Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list saved builds: %w", result.Error)
	}
	return r.modelsToBuilds(models)
}

// Delete removes a saved build
func (r *GormSavedBuildRepository) Delete(ctx context.Context, shipID, name string) error {
	result := r.db.WithContext(ctx).
		Where("ship_id = ? AND name = ?", shipID, name).
		Delete(&SavedBuildModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved build: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &loadout.ErrSavedBuildNotFound{ShipID: shipID, Name: name}
	}
	return nil
}

func (r *GormSavedBuildRepository) modelsToBuilds(models []SavedBuildModel) ([]*loadout.SavedBuild, error) {
	builds := make([]*loadout.SavedBuild, 0, len(models))
	for i := range models {
		build, err := r.modelToBuild(&models[i])
		if err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}
	return builds, nil
}

// modelToBuild converts database model to domain entity
func (r *GormSavedBuildRepository) modelToBuild(model *SavedBuildModel) (*loadout.SavedBuild, error) {
	var doc *loadout.Document
	if len(model.Document) > 0 && string(model.Document) != "null" {
		doc = &loadout.Document{}
		if err := json.Unmarshal(model.Document, doc); err != nil {
			return nil, fmt.Errorf("invalid document for saved build %s: %w", model.ID, err)
		}
	}

	return &loadout.SavedBuild{
		ID:        model.ID,
		ShipID:    model.ShipID,
		Name:      model.Name,
		Code:      model.Code,
		Document:  doc,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// buildToModel converts domain entity to database model
func (r *GormSavedBuildRepository) buildToModel(build *loadout.SavedBuild) (*SavedBuildModel, error) {
	document := datatypes.JSON("null")
	if build.Document != nil {
		raw, err := json.Marshal(build.Document)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		document = datatypes.JSON(raw)
	}

	return &SavedBuildModel{
		ID:        build.ID,
		ShipID:    build.ShipID,
		Name:      build.Name,
		Code:      build.Code,
		Document:  document,
		CreatedAt: build.CreatedAt,
		UpdatedAt: build.UpdatedAt,
	}, nil
}
