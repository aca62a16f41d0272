package outfitting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// Unassigned is the component id that empties a hardpoint or internal slot
const Unassigned = ""

// SlotKind tags a slot with the rules that govern it
type SlotKind int

const (
	SlotBulkhead SlotKind = iota
	SlotCommon
	SlotHardpoint
	SlotInternal
)

func (k SlotKind) String() string {
	switch k {
	case SlotBulkhead:
		return "bulkhead"
	case SlotCommon:
		return "common"
	case SlotHardpoint:
		return "hardpoint"
	case SlotInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// ParseSlotKind is the inverse of SlotKind.String
func ParseSlotKind(s string) (SlotKind, error) {
	for _, k := range []SlotKind{SlotBulkhead, SlotCommon, SlotHardpoint, SlotInternal} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, shared.NewValidationError("kind", fmt.Sprintf("unknown slot kind %q", s))
}

// Mandatory reports whether slots of this kind must always hold a component
func (k SlotKind) Mandatory() bool {
	return k == SlotBulkhead || k == SlotCommon
}

// SlotRef addresses one physical slot of a build. For common slots Index is
// the catalog.Role; for the bulkhead slot it is always 0.
type SlotRef struct {
	Kind  SlotKind
	Index int
}

// BulkheadRef addresses the bulkhead slot
func BulkheadRef() SlotRef { return SlotRef{Kind: SlotBulkhead} }

// CommonRef addresses the common slot of a role
func CommonRef(role catalog.Role) SlotRef { return SlotRef{Kind: SlotCommon, Index: int(role)} }

// HardpointRef addresses a hardpoint by physical position
func HardpointRef(index int) SlotRef { return SlotRef{Kind: SlotHardpoint, Index: index} }

// InternalRef addresses an internal slot by physical position
func InternalRef(index int) SlotRef { return SlotRef{Kind: SlotInternal, Index: index} }

// ParseSlotRef parses "bulkhead", "common:<role>", "hardpoint:<n>" or
// "internal:<n>". Roles may be given by name or canonical index.
func ParseSlotRef(s string) (SlotRef, error) {
	kindName, index, hasIndex := strings.Cut(strings.TrimSpace(s), ":")
	kind, err := ParseSlotKind(kindName)
	if err != nil {
		return SlotRef{}, err
	}
	if kind == SlotBulkhead {
		if hasIndex && index != "0" {
			return SlotRef{}, shared.NewValidationError("slot", fmt.Sprintf("invalid slot %q", s))
		}
		return BulkheadRef(), nil
	}
	if !hasIndex {
		return SlotRef{}, shared.NewValidationError("slot", fmt.Sprintf("slot %q needs an index", s))
	}
	if kind == SlotCommon {
		role, err := catalog.ParseRole(index)
		if err != nil {
			return SlotRef{}, err
		}
		return CommonRef(role), nil
	}
	n, err := strconv.Atoi(index)
	if err != nil || n < 0 {
		return SlotRef{}, shared.NewValidationError("slot", fmt.Sprintf("invalid slot index %q", index))
	}
	return SlotRef{Kind: kind, Index: n}, nil
}

func (r SlotRef) String() string {
	switch r.Kind {
	case SlotBulkhead:
		return "bulkhead"
	case SlotCommon:
		return fmt.Sprintf("common[%s]", catalog.Role(r.Index))
	default:
		return fmt.Sprintf("%s[%d]", r.Kind, r.Index)
	}
}

// Slot is one mount point of a build
//
// Invariants:
// - component, when set, is a shared catalog record and is never copied
// - modifications belong to the current component and are cleared when it changes
type Slot struct {
	ref           SlotRef
	class         int
	component     *catalog.ComponentRecord
	enabled       bool
	includeInCost bool
	modifications []Modification
}

func newSlot(ref SlotRef, class int) *Slot {
	return &Slot{
		ref:           ref,
		class:         class,
		enabled:       true,
		includeInCost: true,
	}
}

func (s *Slot) Ref() SlotRef {
	return s.ref
}

func (s *Slot) Kind() SlotKind {
	return s.ref.Kind
}

// Role returns the common role of the slot; ok is false for other kinds
func (s *Slot) Role() (catalog.Role, bool) {
	if s.ref.Kind != SlotCommon {
		return 0, false
	}
	return catalog.Role(s.ref.Index), true
}

// Class returns the class ceiling of the slot
func (s *Slot) Class() int {
	return s.class
}

// Component returns the assigned record, or nil when the slot is empty
func (s *Slot) Component() *catalog.ComponentRecord {
	return s.component
}

// ComponentID returns the assigned record id, or Unassigned
func (s *Slot) ComponentID() string {
	if s.component == nil {
		return Unassigned
	}
	return s.component.ID
}

func (s *Slot) IsEmpty() bool {
	return s.component == nil
}

func (s *Slot) Enabled() bool {
	return s.enabled
}

func (s *Slot) IncludeInCost() bool {
	return s.includeInCost
}

// Modifications returns a copy of the applied modifications in application order
func (s *Slot) Modifications() []Modification {
	mods := make([]Modification, len(s.modifications))
	copy(mods, s.modifications)
	return mods
}

// Modification returns the value applied for id, if any
func (s *Slot) Modification(id ModificationID) (float64, bool) {
	for _, m := range s.modifications {
		if m.ID == id {
			return m.Value, true
		}
	}
	return 0, false
}

// Mass returns the component mass after modifications (0 when empty)
func (s *Slot) Mass() float64 {
	if s.component == nil {
		return 0
	}
	return s.modified(ModMass, s.component.Mass)
}

// Power returns the component power draw (generation for power plants)
// after modifications
func (s *Slot) Power() float64 {
	if s.component == nil {
		return 0
	}
	return s.modified(ModPower, s.component.Power)
}

// Capacity returns the fuel or cargo capacity after modifications
func (s *Slot) Capacity() float64 {
	if s.component == nil {
		return 0
	}
	return s.modified(ModCapacity, s.component.Capacity)
}

// Cost returns the component cost (0 when empty)
func (s *Slot) Cost() int64 {
	if s.component == nil {
		return 0
	}
	return s.component.Cost
}

func (s *Slot) modified(id ModificationID, base float64) float64 {
	if value, ok := s.Modification(id); ok {
		return base * (1 + value)
	}
	return base
}

func (s *Slot) setModification(id ModificationID, value float64) {
	for i := range s.modifications {
		if s.modifications[i].ID == id {
			if value == 0 {
				s.modifications = append(s.modifications[:i], s.modifications[i+1:]...)
			} else {
				s.modifications[i].Value = value
			}
			return
		}
	}
	if value != 0 {
		s.modifications = append(s.modifications, Modification{ID: id, Value: value})
	}
}

func (s *Slot) clone() *Slot {
	c := *s
	c.modifications = s.Modifications()
	return &c
}
