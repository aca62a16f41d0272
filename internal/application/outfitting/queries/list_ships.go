package queries

import (
	"context"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
)

// ListShipsQuery lists the ship templates of the catalog
type ListShipsQuery struct{}

type ListShipsResponse struct {
	CatalogVersion string
	Ships          []*catalog.ShipTemplate
}

// ListShipsHandler handles the ListShips query
type ListShipsHandler struct {
	catalog *catalog.Catalog
}

func NewListShipsHandler(cat *catalog.Catalog) *ListShipsHandler {
	return &ListShipsHandler{catalog: cat}
}

// Handle executes the ListShips query
func (h *ListShipsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListShipsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListShipsQuery")
	}
	return &ListShipsResponse{CatalogVersion: h.catalog.Version(), Ships: h.catalog.Ships()}, nil
}
