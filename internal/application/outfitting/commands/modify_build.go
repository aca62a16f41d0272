package commands

import (
	"context"
	"fmt"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/metrics"
	"github.com/cmmcleod/coriolis-sub002/internal/application/common"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// OperationKind names a build mutation
type OperationKind string

const (
	OpSelect        OperationKind = "select"
	OpToggleEnabled OperationKind = "toggle_enabled"
	OpToggleCost    OperationKind = "toggle_cost"
	OpModify        OperationKind = "modify"
	OpReset         OperationKind = "reset"
)

// BuildOperation is one mutation applied by ModifyBuildCommand
type BuildOperation struct {
	Kind         OperationKind
	Slot         string // see outfitting.ParseSlotRef
	ComponentID  string
	Modification string
	Value        float64
}

// ModifyBuildCommand applies operations in order to the build described by
// Code, or to the stock build of ShipID when Code is empty. Operations are
// all-or-nothing: the first rejected operation fails the command.
type ModifyBuildCommand struct {
	Code       string
	ShipID     string
	Operations []BuildOperation
}

// ModifyBuildResponse contains the resulting build and its code
type ModifyBuildResponse struct {
	Build *outfitting.Build
	Code  string
}

// ModifyBuildHandler handles the ModifyBuild command
type ModifyBuildHandler struct {
	catalog *catalog.Catalog
}

func NewModifyBuildHandler(cat *catalog.Catalog) *ModifyBuildHandler {
	return &ModifyBuildHandler{catalog: cat}
}

// Handle executes the ModifyBuild command
func (h *ModifyBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ModifyBuildCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ModifyBuildCommand")
	}

	var (
		build *outfitting.Build
		err   error
	)
	if cmd.Code != "" {
		build, err = decode(h.catalog, cmd.Code)
	} else {
		build, err = outfitting.NewBuild(h.catalog, cmd.ShipID)
	}
	if err != nil {
		return nil, err
	}

	for i, op := range cmd.Operations {
		if err := apply(build, op); err != nil {
			return nil, fmt.Errorf("operation %d (%s %s): %w", i+1, op.Kind, op.Slot, err)
		}
	}

	code := loadout.Encode(build)
	metrics.RecordCodecOperation(metrics.OperationEncode, true)

	common.LoggerFromContext(ctx).Log("DEBUG", "build modified", map[string]interface{}{
		"ship":       build.Ship().ID,
		"operations": len(cmd.Operations),
		"code":       code,
	})
	return &ModifyBuildResponse{Build: build, Code: code}, nil
}

func apply(build *outfitting.Build, op BuildOperation) error {
	if op.Kind == OpReset {
		build.Reset()
		return nil
	}

	ref, err := outfitting.ParseSlotRef(op.Slot)
	if err != nil {
		return err
	}

	switch op.Kind {
	case OpSelect:
		return build.Select(ref, op.ComponentID)
	case OpToggleEnabled:
		return build.ToggleEnabled(ref)
	case OpToggleCost:
		return build.ToggleCost(ref)
	case OpModify:
		return build.ApplyModification(ref, outfitting.ModificationID(op.Modification), op.Value)
	default:
		return shared.NewValidationError("operation", fmt.Sprintf("unknown operation %q", op.Kind))
	}
}
