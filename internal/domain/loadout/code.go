package loadout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// CodeVersion is the format marker at the start of every build code
const CodeVersion = "1"

const (
	sectionSeparator = "."
	modSeparator     = "~"
	fieldSeparator   = "_"
	emptyComponentID = "--"
	slotUnitWidth    = 3
	// bulkheadIndex is the bulkhead's position in canonical slot order
	bulkheadIndex = 0
)

const (
	flagEnabled       = 1 << 0
	flagIncludeInCost = 1 << 1
)

// Encode serializes a build to its code:
//
//	<version>.<shipID>.<slots>.<mods>
//
// slots holds one 3-character unit per slot in canonical order (component id
// or "--", then a flag digit). mods holds "~"-joined slotIndex_modID_value
// triples with value scaled by outfitting.ModificationScale. Modification ids
// may contain "_", so a triple is split at its first and last separator.
func Encode(build *outfitting.Build) string {
	slots := build.Slots()

	var units strings.Builder
	units.Grow(len(slots) * slotUnitWidth)
	var mods []string

	for i, slot := range slots {
		id := slot.ComponentID()
		if id == outfitting.Unassigned {
			id = emptyComponentID
		}
		units.WriteString(id)
		units.WriteByte(byte('0' + encodeFlags(slot.Enabled(), slot.IncludeInCost())))

		for _, m := range slot.Modifications() {
			scaled := int64(math.Round(m.Value * outfitting.ModificationScale))
			mods = append(mods, strings.Join([]string{
				strconv.Itoa(i), string(m.ID), strconv.FormatInt(scaled, 10),
			}, fieldSeparator))
		}
	}

	return strings.Join([]string{
		CodeVersion,
		build.Ship().ID,
		units.String(),
		strings.Join(mods, modSeparator),
	}, sectionSeparator)
}

// Decode reconstructs a build from a code against the given catalog. It
// never returns a partial build.
func Decode(cat *catalog.Catalog, code string) (*outfitting.Build, error) {
	sections := strings.Split(code, sectionSeparator)
	if len(sections) != 4 {
		return nil, shared.NewMalformedCodeError(code, fmt.Sprintf("expected 4 sections, got %d", len(sections)))
	}
	version, shipID, units, modList := sections[0], sections[1], sections[2], sections[3]

	if version != CodeVersion {
		return nil, shared.NewMalformedCodeError(code, fmt.Sprintf("unsupported version %q", version))
	}
	ship, err := cat.Ship(shipID)
	if err != nil {
		return nil, err
	}
	if len(units) != ship.SlotCount()*slotUnitWidth {
		return nil, shared.NewMalformedCodeError(code,
			fmt.Sprintf("%s has %d slots, code describes %d characters", ship.ID, ship.SlotCount(), len(units)))
	}

	states := make([]slotState, ship.SlotCount())
	for i := range states {
		unit := units[i*slotUnitWidth : (i+1)*slotUnitWidth]
		id := unit[:2]
		if id == emptyComponentID {
			id = outfitting.Unassigned
		}
		flags := int(unit[2] - '0')
		if unit[2] < '0' || flags > flagEnabled|flagIncludeInCost {
			return nil, shared.NewMalformedCodeError(code, fmt.Sprintf("invalid flag %q at slot %d", unit[2], i))
		}
		if i == bulkheadIndex && flags&flagEnabled == 0 {
			return nil, shared.NewMalformedCodeError(code, "bulkhead flag must have the enabled bit set")
		}
		states[i] = slotState{
			id:            id,
			enabled:       flags&flagEnabled != 0,
			includeInCost: flags&flagIncludeInCost != 0,
		}
	}

	if modList != "" {
		for _, triple := range strings.Split(modList, modSeparator) {
			fields, ok := splitTriple(triple)
			if !ok {
				return nil, shared.NewMalformedCodeError(code, fmt.Sprintf("invalid modification %q", triple))
			}
			index, err := strconv.Atoi(fields[0])
			if err != nil || index < 0 || index >= len(states) {
				return nil, shared.NewMalformedCodeError(code, fmt.Sprintf("invalid modification slot %q", fields[0]))
			}
			scaled, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil || scaled == 0 {
				return nil, shared.NewMalformedCodeError(code, fmt.Sprintf("invalid modification value %q", fields[2]))
			}
			states[index].mods = append(states[index].mods, outfitting.Modification{
				ID:    outfitting.ModificationID(fields[1]),
				Value: float64(scaled) / outfitting.ModificationScale,
			})
		}
	}

	return assemble(cat, ship.ID, states, nil)
}

func splitTriple(triple string) ([3]string, bool) {
	index, rest, ok := strings.Cut(triple, fieldSeparator)
	last := strings.LastIndex(rest, fieldSeparator)
	if !ok || last <= 0 {
		return [3]string{}, false
	}
	return [3]string{index, rest[:last], rest[last+1:]}, true
}

func encodeFlags(enabled, includeInCost bool) int {
	flags := 0
	if enabled {
		flags |= flagEnabled
	}
	if includeInCost {
		flags |= flagIncludeInCost
	}
	return flags
}

// slotState is one slot as described by a code or a document
type slotState struct {
	id            string
	enabled       bool
	includeInCost bool
	mods          []outfitting.Modification
}

// assemble replays slot states onto a stock build. refs, when non-nil, names
// the slot each state targets; otherwise states are in canonical order.
func assemble(cat *catalog.Catalog, shipID string, states []slotState, refs []outfitting.SlotRef) (*outfitting.Build, error) {
	build, err := outfitting.NewBuild(cat, shipID)
	if err != nil {
		return nil, err
	}

	resolved := make([]*outfitting.Slot, len(states))
	for i, state := range states {
		var slot *outfitting.Slot
		if refs != nil {
			slot, err = build.Slot(refs[i])
		} else {
			slot, err = build.SlotAt(i)
		}
		if err != nil {
			return nil, err
		}
		ref := slot.Ref()
		resolved[i] = slot

		if state.id != outfitting.Unassigned {
			if _, ok := build.Lookup(ref, state.id); !ok {
				return nil, shared.NewUnknownComponentReferenceError(ref.String(), state.id)
			}
		}
		if err := build.Select(ref, state.id); err != nil {
			return nil, err
		}

		if !state.enabled {
			if err := build.ToggleEnabled(ref); err != nil {
				return nil, err
			}
		}
		if !state.includeInCost {
			if err := build.ToggleCost(ref); err != nil {
				return nil, err
			}
		}
	}

	for i, state := range states {
		for _, m := range state.mods {
			if err := build.ApplyModification(resolved[i].Ref(), m.ID, m.Value); err != nil {
				return nil, err
			}
		}
	}

	return build, nil
}
