package queries

import (
	"context"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
)

// LoadBuildQuery loads a saved build by ship and name
type LoadBuildQuery struct {
	ShipID string
	Name   string
}

type LoadBuildResponse struct {
	Saved *loadout.SavedBuild
	Build *outfitting.Build
}

// LoadBuildHandler handles the LoadBuild query
type LoadBuildHandler struct {
	catalog *catalog.Catalog
	repo    loadout.SavedBuildRepository
}

func NewLoadBuildHandler(cat *catalog.Catalog, repo loadout.SavedBuildRepository) *LoadBuildHandler {
	return &LoadBuildHandler{catalog: cat, repo: repo}
}

// Handle executes the LoadBuild query. A stored document is rebuilt from its
// slot listing and must agree with the stored code.
func (h *LoadBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*LoadBuildQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoadBuildQuery")
	}

	saved, err := h.repo.FindByName(ctx, query.ShipID, query.Name)
	if err != nil {
		return nil, err
	}

	var build *outfitting.Build
	if saved.Document != nil {
		build, err = loadout.FromDocument(h.catalog, saved.Document)
	} else {
		build, err = resolveBuild(h.catalog, saved.Code, saved.ShipID)
	}
	if err != nil {
		return nil, fmt.Errorf("saved build %s/%s is no longer valid: %w", saved.ShipID, saved.Name, err)
	}

	return &LoadBuildResponse{Saved: saved, Build: build}, nil
}
