package commands

import (
	"context"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/application/common"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
)

// DeleteBuildCommand removes a saved build
type DeleteBuildCommand struct {
	ShipID string
	Name   string
}

type DeleteBuildResponse struct {
	ShipID string
	Name   string
}

// DeleteBuildHandler handles the DeleteBuild command
type DeleteBuildHandler struct {
	repo loadout.SavedBuildRepository
}

func NewDeleteBuildHandler(repo loadout.SavedBuildRepository) *DeleteBuildHandler {
	return &DeleteBuildHandler{repo: repo}
}

// Handle executes the DeleteBuild command
func (h *DeleteBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteBuildCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteBuildCommand")
	}

	if err := h.repo.Delete(ctx, cmd.ShipID, cmd.Name); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("INFO", "build deleted", map[string]interface{}{
		"ship": cmd.ShipID,
		"name": cmd.Name,
	})
	return &DeleteBuildResponse{ShipID: cmd.ShipID, Name: cmd.Name}, nil
}
