package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
)

// SlotOptionsQuery lists the components legal in one slot of a ship
type SlotOptionsQuery struct {
	ShipID string
	Slot   string // see outfitting.ParseSlotRef
}

type SlotOptionsResponse struct {
	Slot       outfitting.SlotRef
	SlotClass  int
	Components []*catalog.ComponentRecord // by group, class, rating, id
}

// SlotOptionsHandler handles the SlotOptions query
type SlotOptionsHandler struct {
	catalog *catalog.Catalog
}

func NewSlotOptionsHandler(cat *catalog.Catalog) *SlotOptionsHandler {
	return &SlotOptionsHandler{catalog: cat}
}

// Handle executes the SlotOptions query
func (h *SlotOptionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*SlotOptionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SlotOptionsQuery")
	}

	ref, err := outfitting.ParseSlotRef(query.Slot)
	if err != nil {
		return nil, err
	}
	build, err := outfitting.NewBuild(h.catalog, query.ShipID)
	if err != nil {
		return nil, err
	}
	slot, err := build.Slot(ref)
	if err != nil {
		return nil, err
	}
	pool, err := build.Options(ref)
	if err != nil {
		return nil, err
	}

	components := make([]*catalog.ComponentRecord, 0, len(pool))
	for _, record := range pool {
		components = append(components, record)
	}
	sort.Slice(components, func(i, j int) bool {
		a, b := components[i], components[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		if a.Rating != b.Rating {
			return a.Rating < b.Rating
		}
		return a.ID < b.ID
	})

	return &SlotOptionsResponse{Slot: ref, SlotClass: slot.Class(), Components: components}, nil
}
