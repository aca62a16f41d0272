package queries

import (
	"context"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
)

// CompareBuildsQuery compares the statistics of two build codes
type CompareBuildsQuery struct {
	CodeA string
	CodeB string
}

type CompareBuildsResponse struct {
	A      *outfitting.Build
	B      *outfitting.Build
	Deltas []StatDelta
}

// StatDelta is one statistic of both builds; Delta is B - A
type StatDelta struct {
	Name  string
	A     float64
	B     float64
	Delta float64
}

// CompareBuildsHandler handles the CompareBuilds query
type CompareBuildsHandler struct {
	catalog *catalog.Catalog
}

func NewCompareBuildsHandler(cat *catalog.Catalog) *CompareBuildsHandler {
	return &CompareBuildsHandler{catalog: cat}
}

// Handle executes the CompareBuilds query
func (h *CompareBuildsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*CompareBuildsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompareBuildsQuery")
	}

	a, err := resolveBuild(h.catalog, query.CodeA, "")
	if err != nil {
		return nil, fmt.Errorf("first build: %w", err)
	}
	b, err := resolveBuild(h.catalog, query.CodeB, "")
	if err != nil {
		return nil, fmt.Errorf("second build: %w", err)
	}

	return &CompareBuildsResponse{A: a, B: b, Deltas: compareStats(a.Stats(), b.Stats())}, nil
}

func compareStats(a, b outfitting.Stats) []StatDelta {
	rows := []struct {
		name string
		a, b float64
	}{
		{"mass", a.Mass, b.Mass},
		{"laden mass", a.LadenMass, b.LadenMass},
		{"fuel capacity", a.FuelCapacity, b.FuelCapacity},
		{"cargo capacity", a.CargoCapacity, b.CargoCapacity},
		{"power generated", a.PowerGenerated, b.PowerGenerated},
		{"power consumed", a.PowerConsumed, b.PowerConsumed},
		{"power balance", a.PowerBalance, b.PowerBalance},
		{"total cost", float64(a.TotalCost), float64(b.TotalCost)},
		{"ship cost", float64(a.ShipCost), float64(b.ShipCost)},
		{"unladen jump range", a.UnladenJumpRange, b.UnladenJumpRange},
		{"laden jump range", a.LadenJumpRange, b.LadenJumpRange},
	}

	deltas := make([]StatDelta, 0, len(rows))
	for _, r := range rows {
		deltas = append(deltas, StatDelta{Name: r.name, A: r.a, B: r.b, Delta: r.b - r.a})
	}
	return deltas
}
