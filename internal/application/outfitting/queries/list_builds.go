package queries

import (
	"context"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
)

// ListBuildsQuery lists saved builds of a ship, or of every ship when ShipID is empty
type ListBuildsQuery struct {
	ShipID string
}

type ListBuildsResponse struct {
	Builds []*BuildSummary
}

// BuildSummary is a saved build without its document
type BuildSummary struct {
	ShipID    string
	Name      string
	Code      string
	TotalCost int64
	UpdatedAt string
}

// ListBuildsHandler handles the ListBuilds query
type ListBuildsHandler struct {
	repo loadout.SavedBuildRepository
}

func NewListBuildsHandler(repo loadout.SavedBuildRepository) *ListBuildsHandler {
	return &ListBuildsHandler{repo: repo}
}

// Handle executes the ListBuilds query
func (h *ListBuildsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListBuildsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListBuildsQuery")
	}

	var (
		saved []*loadout.SavedBuild
		err   error
	)
	if query.ShipID == "" {
		saved, err = h.repo.ListAll(ctx)
	} else {
		saved, err = h.repo.ListByShip(ctx, query.ShipID)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]*BuildSummary, 0, len(saved))
	for _, s := range saved {
		summary := &BuildSummary{
			ShipID:    s.ShipID,
			Name:      s.Name,
			Code:      s.Code,
			UpdatedAt: s.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if s.Document != nil {
			summary.TotalCost = s.Document.Stats.TotalCost
		}
		summaries = append(summaries, summary)
	}

	return &ListBuildsResponse{Builds: summaries}, nil
}
