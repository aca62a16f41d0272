package loadout

import (
	"context"
	"fmt"
	"time"
)

// SavedBuild is a named build persisted for a ship
type SavedBuild struct {
	ID        string
	ShipID    string
	Name      string
	Code      string
	Document  *Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SavedBuildRepository maps build names to codes and export documents.
// Names are unique per ship; Save replaces an existing build of the same name.
type SavedBuildRepository interface {
	Save(ctx context.Context, build *SavedBuild) error
	FindByName(ctx context.Context, shipID, name string) (*SavedBuild, error)
	ListByShip(ctx context.Context, shipID string) ([]*SavedBuild, error)
	ListAll(ctx context.Context) ([]*SavedBuild, error)
	Delete(ctx context.Context, shipID, name string) error
}

// DocumentValidator checks a document against the ship-loadout schema
type DocumentValidator interface {
	Validate(doc *Document) error
}

// ErrSavedBuildNotFound indicates no build of that name exists for the ship
type ErrSavedBuildNotFound struct {
	ShipID string
	Name   string
}

func (e *ErrSavedBuildNotFound) Error() string {
	return fmt.Sprintf("saved build not found: %s/%s", e.ShipID, e.Name)
}
