package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/metrics"
	"github.com/cmmcleod/coriolis-sub002/internal/application/common"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// SaveBuildCommand stores a build code under a name for its ship. Saving an
// existing name replaces it.
type SaveBuildCommand struct {
	Name string
	Code string
}

// SaveBuildResponse contains the stored build
type SaveBuildResponse struct {
	Saved *loadout.SavedBuild
}

// SaveBuildHandler handles the SaveBuild command
type SaveBuildHandler struct {
	catalog   *catalog.Catalog
	repo      loadout.SavedBuildRepository
	validator loadout.DocumentValidator
	clock     shared.Clock
}

// NewSaveBuildHandler creates a new SaveBuildHandler. A nil clock uses the real clock.
func NewSaveBuildHandler(
	cat *catalog.Catalog,
	repo loadout.SavedBuildRepository,
	validator loadout.DocumentValidator,
	clock shared.Clock,
) *SaveBuildHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SaveBuildHandler{
		catalog:   cat,
		repo:      repo,
		validator: validator,
		clock:     clock,
	}
}

// Handle executes the SaveBuild command
func (h *SaveBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SaveBuildCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveBuildCommand")
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, shared.NewValidationError("name", "build name cannot be empty")
	}

	build, err := decode(h.catalog, cmd.Code)
	if err != nil {
		return nil, err
	}

	doc := loadout.NewDocument(name, build, h.clock)
	if err := h.validator.Validate(doc); err != nil {
		metrics.RecordCodecOperation(metrics.OperationExport, false)
		return nil, err
	}
	metrics.RecordCodecOperation(metrics.OperationExport, true)

	now := h.clock.Now()
	saved := &loadout.SavedBuild{
		ShipID:    build.Ship().ID,
		Name:      name,
		Code:      doc.Code,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.repo.Save(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save build: %w", err)
	}

	stats := build.Stats()
	metrics.RecordBuildCost(saved.ShipID, stats.TotalCost)
	common.LoggerFromContext(ctx).Log("INFO", "build saved", map[string]interface{}{
		"ship":       saved.ShipID,
		"name":       saved.Name,
		"total_cost": stats.TotalCost,
	})

	stored, err := h.repo.FindByName(ctx, saved.ShipID, saved.Name)
	if err != nil {
		return nil, err
	}
	return &SaveBuildResponse{Saved: stored}, nil
}

// decode decodes a build code and records the outcome
func decode(cat *catalog.Catalog, code string) (*outfitting.Build, error) {
	build, err := loadout.Decode(cat, strings.TrimSpace(code))
	metrics.RecordCodecOperation(metrics.OperationDecode, err == nil)
	if err != nil {
		return nil, err
	}
	return build, nil
}
