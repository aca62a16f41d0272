package queries

import (
	"context"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/metrics"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// ExportBuildQuery produces the validated export document of a build
type ExportBuildQuery struct {
	Name   string
	Code   string
	ShipID string
}

type ExportBuildResponse struct {
	Document *loadout.Document
}

// ExportBuildHandler handles the ExportBuild query
type ExportBuildHandler struct {
	catalog   *catalog.Catalog
	validator loadout.DocumentValidator
	clock     shared.Clock
}

func NewExportBuildHandler(cat *catalog.Catalog, validator loadout.DocumentValidator, clock shared.Clock) *ExportBuildHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ExportBuildHandler{catalog: cat, validator: validator, clock: clock}
}

// Handle executes the ExportBuild query
func (h *ExportBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ExportBuildQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportBuildQuery")
	}

	build, err := resolveBuild(h.catalog, query.Code, query.ShipID)
	if err != nil {
		return nil, err
	}

	name := query.Name
	if name == "" {
		name = build.Ship().Name
	}
	doc := loadout.NewDocument(name, build, h.clock)

	err = h.validator.Validate(doc)
	metrics.RecordCodecOperation(metrics.OperationExport, err == nil)
	if err != nil {
		return nil, err
	}
	return &ExportBuildResponse{Document: doc}, nil
}
