package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/metrics"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// InspectBuildQuery decodes Code, or builds the stock loadout of ShipID when
// Code is empty
type InspectBuildQuery struct {
	Code   string
	ShipID string
}

type InspectBuildResponse struct {
	Build *outfitting.Build
	Code  string
}

// InspectBuildHandler handles the InspectBuild query
type InspectBuildHandler struct {
	catalog *catalog.Catalog
}

func NewInspectBuildHandler(cat *catalog.Catalog) *InspectBuildHandler {
	return &InspectBuildHandler{catalog: cat}
}

// Handle executes the InspectBuild query
func (h *InspectBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*InspectBuildQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InspectBuildQuery")
	}

	build, err := resolveBuild(h.catalog, query.Code, query.ShipID)
	if err != nil {
		return nil, err
	}

	metrics.RecordBuildCost(build.Ship().ID, build.Stats().TotalCost)
	return &InspectBuildResponse{Build: build, Code: loadout.Encode(build)}, nil
}

// resolveBuild decodes code, falling back to the stock build of shipID
func resolveBuild(cat *catalog.Catalog, code, shipID string) (*outfitting.Build, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		if shipID == "" {
			return nil, shared.NewValidationError("code", "either a build code or a ship is required")
		}
		return outfitting.NewBuild(cat, shipID)
	}

	build, err := loadout.Decode(cat, code)
	metrics.RecordCodecOperation(metrics.OperationDecode, err == nil)
	if err != nil {
		return nil, err
	}
	return build, nil
}
