package queries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/metrics"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
)

// RawDocumentValidator validates documents before they are decoded
type RawDocumentValidator interface {
	ValidateJSON(raw []byte) error
}

// ImportBuildQuery rebuilds a build from a raw export document
type ImportBuildQuery struct {
	Document []byte
}

type ImportBuildResponse struct {
	Document *loadout.Document
	Build    *outfitting.Build
}

// ImportBuildHandler handles the ImportBuild query
type ImportBuildHandler struct {
	catalog   *catalog.Catalog
	validator RawDocumentValidator
}

func NewImportBuildHandler(cat *catalog.Catalog, validator RawDocumentValidator) *ImportBuildHandler {
	return &ImportBuildHandler{catalog: cat, validator: validator}
}

// Handle executes the ImportBuild query
func (h *ImportBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ImportBuildQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportBuildQuery")
	}

	if err := h.validator.ValidateJSON(query.Document); err != nil {
		metrics.RecordCodecOperation(metrics.OperationImport, false)
		return nil, err
	}

	var doc loadout.Document
	if err := json.Unmarshal(query.Document, &doc); err != nil {
		metrics.RecordCodecOperation(metrics.OperationImport, false)
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	build, err := loadout.FromDocument(h.catalog, &doc)
	metrics.RecordCodecOperation(metrics.OperationImport, err == nil)
	if err != nil {
		return nil, err
	}
	return &ImportBuildResponse{Document: &doc, Build: build}, nil
}
