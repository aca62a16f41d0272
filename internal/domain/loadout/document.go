package loadout

import (
	"fmt"
	"time"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// SchemaURL identifies the ship-loadout schema version documents declare
const SchemaURL = "https://coriolis.io/schemas/ship-loadout/1.json#"

// Document is the structured export of a build
type Document struct {
	Schema    string        `json:"$schema"`
	Name      string        `json:"name"`
	Ship      string        `json:"ship"`
	Code      string        `json:"code"`
	Timestamp string        `json:"timestamp"`
	Slots     []SlotEntry   `json:"slots"`
	Stats     StatsSnapshot `json:"stats"`
}

// SlotEntry describes one slot. Component fields are empty for an empty slot.
type SlotEntry struct {
	Kind          string              `json:"kind"`
	Index         int                 `json:"index"`
	Role          string              `json:"role,omitempty"`
	Class         int                 `json:"class"`
	ComponentID   string              `json:"component"`
	Group         string              `json:"group,omitempty"`
	Rating        string              `json:"rating,omitempty"`
	Name          string              `json:"name,omitempty"`
	Enabled       bool                `json:"enabled"`
	IncludeInCost bool                `json:"includeInCost"`
	Modifications []ModificationEntry `json:"modifications,omitempty"`
}

type ModificationEntry struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

// StatsSnapshot is the statistics block at export time
type StatsSnapshot struct {
	HullMass         float64         `json:"hullMass"`
	Mass             float64         `json:"mass"`
	UnladenMass      float64         `json:"unladenMass"`
	LadenMass        float64         `json:"ladenMass"`
	FuelCapacity     float64         `json:"fuelCapacity"`
	CargoCapacity    float64         `json:"cargoCapacity"`
	PowerGenerated   float64         `json:"powerGenerated"`
	PowerConsumed    float64         `json:"powerConsumed"`
	PowerBalance     float64         `json:"powerBalance"`
	TotalCost        int64           `json:"totalCost"`
	ShipCost         int64           `json:"shipCost"`
	UnladenJumpRange float64         `json:"unladenJumpRange"`
	LadenJumpRange   float64         `json:"ladenJumpRange"`
	RetrofitTotal    int64           `json:"retrofitTotal"`
	RetrofitChanges  []RetrofitEntry `json:"retrofitChanges"`
}

type RetrofitEntry struct {
	Slot     string `json:"slot"`
	From     string `json:"from"`
	To       string `json:"to"`
	FromCost int64  `json:"fromCost"`
	ToCost   int64  `json:"toCost"`
}

// NewDocument exports a build under a name, stamped with the clock's time
func NewDocument(name string, build *outfitting.Build, clock shared.Clock) *Document {
	slots := build.Slots()
	doc := &Document{
		Schema:    SchemaURL,
		Name:      name,
		Ship:      build.Ship().ID,
		Code:      Encode(build),
		Timestamp: clock.Now().UTC().Format(time.RFC3339),
		Slots:     make([]SlotEntry, 0, len(slots)),
		Stats:     snapshot(build.Stats()),
	}

	for _, slot := range slots {
		ref := slot.Ref()
		entry := SlotEntry{
			Kind:          ref.Kind.String(),
			Index:         ref.Index,
			Class:         slot.Class(),
			ComponentID:   slot.ComponentID(),
			Enabled:       slot.Enabled(),
			IncludeInCost: slot.IncludeInCost(),
		}
		if role, ok := slot.Role(); ok {
			entry.Role = role.String()
		}
		if component := slot.Component(); component != nil {
			entry.Group = string(component.Group)
			entry.Rating = component.Rating
			entry.Name = component.Name
		}
		for _, m := range slot.Modifications() {
			entry.Modifications = append(entry.Modifications, ModificationEntry{ID: string(m.ID), Value: m.Value})
		}
		doc.Slots = append(doc.Slots, entry)
	}

	return doc
}

// FromDocument rebuilds a build from the document's slot listing. The code
// recomputed from the result must equal the document's code.
func FromDocument(cat *catalog.Catalog, doc *Document) (*outfitting.Build, error) {
	ship, err := cat.Ship(doc.Ship)
	if err != nil {
		return nil, err
	}
	if len(doc.Slots) != ship.SlotCount() {
		return nil, shared.NewValidationError("slots",
			fmt.Sprintf("%s has %d slots, document lists %d", ship.ID, ship.SlotCount(), len(doc.Slots)))
	}

	states := make([]slotState, len(doc.Slots))
	refs := make([]outfitting.SlotRef, len(doc.Slots))
	seen := make(map[outfitting.SlotRef]bool, len(doc.Slots))
	for i, entry := range doc.Slots {
		kind, err := outfitting.ParseSlotKind(entry.Kind)
		if err != nil {
			return nil, err
		}
		ref := outfitting.SlotRef{Kind: kind, Index: entry.Index}
		if seen[ref] {
			return nil, shared.NewValidationError("slots", fmt.Sprintf("%s listed twice", ref))
		}
		seen[ref] = true
		refs[i] = ref

		state := slotState{
			id:            entry.ComponentID,
			enabled:       entry.Enabled,
			includeInCost: entry.IncludeInCost,
		}
		for _, m := range entry.Modifications {
			state.mods = append(state.mods, outfitting.Modification{
				ID:    outfitting.ModificationID(m.ID),
				Value: m.Value,
			})
		}
		states[i] = state
	}

	build, err := assemble(cat, ship.ID, states, refs)
	if err != nil {
		return nil, err
	}
	if code := Encode(build); code != doc.Code {
		return nil, shared.NewCodeMismatchError(doc.Code, code)
	}
	return build, nil
}

func snapshot(stats outfitting.Stats) StatsSnapshot {
	s := StatsSnapshot{
		HullMass:         stats.HullMass,
		Mass:             stats.Mass,
		UnladenMass:      stats.UnladenMass,
		LadenMass:        stats.LadenMass,
		FuelCapacity:     stats.FuelCapacity,
		CargoCapacity:    stats.CargoCapacity,
		PowerGenerated:   stats.PowerGenerated,
		PowerConsumed:    stats.PowerConsumed,
		PowerBalance:     stats.PowerBalance,
		TotalCost:        stats.TotalCost,
		ShipCost:         stats.ShipCost,
		UnladenJumpRange: stats.UnladenJumpRange,
		LadenJumpRange:   stats.LadenJumpRange,
		RetrofitTotal:    stats.RetrofitTotal,
		RetrofitChanges:  make([]RetrofitEntry, 0, len(stats.RetrofitChanges)),
	}
	for _, change := range stats.RetrofitChanges {
		s.RetrofitChanges = append(s.RetrofitChanges, RetrofitEntry{
			Slot:     change.Slot.String(),
			From:     change.FromID,
			To:       change.ToID,
			FromCost: change.FromCost,
			ToCost:   change.ToCost,
		})
	}
	return s
}
