package outfitting

import (
	"fmt"
	"iter"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// Build is the aggregate root of the outfitting domain: one component per
// slot of a ship, plus the derived statistics.
//
// Invariants:
//   - slots are held in canonical order: bulkhead, the seven common roles,
//     hardpoints in physical order, internals in physical order
//   - bulkhead and common slots always hold a component
//   - every mutation validates before it changes anything; a rejected call
//     leaves the build untouched
//   - stats always reflect the current slots and the baseline
//
// A Build is not safe for concurrent use. It owns its ComponentSet; the
// catalog records it references are shared and read-only.
type Build struct {
	catalog *catalog.Catalog
	ship    *catalog.ShipTemplate
	set     *catalog.ComponentSet
	formula JumpFormula

	slots    []*Slot
	baseline []baselineEntry
	stats    Stats
}

// Option configures a Build
type Option func(*Build)

// WithJumpFormula replaces the default frame shift drive formula
func WithJumpFormula(formula JumpFormula) Option {
	return func(b *Build) {
		b.formula = formula
	}
}

// NewBuild creates a stock build of a ship and captures it as the baseline
// for retrofit accounting.
func NewBuild(cat *catalog.Catalog, shipID string, opts ...Option) (*Build, error) {
	ship, err := cat.Ship(shipID)
	if err != nil {
		return nil, err
	}

	b := &Build{
		catalog: cat,
		ship:    ship,
		set:     catalog.NewComponentSet(cat, ship),
		formula: FSDJumpFormula{},
	}
	for _, opt := range opts {
		opt(b)
	}

	b.slots = make([]*Slot, 0, ship.SlotCount())
	b.slots = append(b.slots, newSlot(BulkheadRef(), 1))
	for _, role := range catalog.Roles() {
		b.slots = append(b.slots, newSlot(CommonRef(role), ship.Common[role]))
	}
	for i, class := range ship.Hardpoints {
		b.slots = append(b.slots, newSlot(HardpointRef(i), class))
	}
	for i, class := range ship.Internal {
		b.slots = append(b.slots, newSlot(InternalRef(i), class))
	}

	stock, err := b.resolveLoadout(ship.Defaults)
	if err != nil {
		return nil, fmt.Errorf("invalid stock loadout for %s: %w", ship.ID, err)
	}
	b.baseline = make([]baselineEntry, len(b.slots))
	for i, slot := range b.slots {
		slot.component = stock[i]
		b.baseline[i] = baselineEntry{component: stock[i]}
	}

	b.recompute()
	return b, nil
}

func (b *Build) resolveLoadout(loadout catalog.Loadout) ([]*catalog.ComponentRecord, error) {
	if loadout.Bulkhead < 0 || loadout.Bulkhead >= len(b.ship.Bulkheads) {
		return nil, shared.NewInvalidComponentForSlotError(BulkheadRef().String(), fmt.Sprint(loadout.Bulkhead), "no such bulkhead")
	}
	ids := make([]string, 0, len(b.slots))
	ids = append(ids, b.ship.Bulkheads[loadout.Bulkhead].ID)
	ids = append(ids, loadout.Common[:]...)
	ids = append(ids, loadout.Hardpoints...)
	ids = append(ids, loadout.Internal...)

	records := make([]*catalog.ComponentRecord, len(b.slots))
	for i, slot := range b.slots {
		record, err := b.resolve(slot, ids[i])
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}

// Ship returns the template of the build
func (b *Build) Ship() *catalog.ShipTemplate {
	return b.ship
}

// Catalog returns the catalog the build resolves components against
func (b *Build) Catalog() *catalog.Catalog {
	return b.catalog
}

// ComponentSet returns the per-ship legal component view
func (b *Build) ComponentSet() *catalog.ComponentSet {
	return b.set
}

// Stats returns a copy of the current statistics
func (b *Build) Stats() Stats {
	return b.stats.clone()
}

// Slots returns every slot in canonical order
func (b *Build) Slots() []*Slot {
	slots := make([]*Slot, len(b.slots))
	copy(slots, b.slots)
	return slots
}

// Bulkhead returns the bulkhead slot
func (b *Build) Bulkhead() *Slot {
	return b.slots[0]
}

// Common returns the common slot of a role
func (b *Build) Common(role catalog.Role) *Slot {
	return b.slots[1+int(role)]
}

// Hardpoints returns the hardpoint slots in physical order
func (b *Build) Hardpoints() []*Slot {
	start := 1 + catalog.CommonRoleCount
	return append([]*Slot(nil), b.slots[start:start+len(b.ship.Hardpoints)]...)
}

// Internals returns the internal slots in physical order
func (b *Build) Internals() []*Slot {
	start := 1 + catalog.CommonRoleCount + len(b.ship.Hardpoints)
	return append([]*Slot(nil), b.slots[start:]...)
}

// Slot returns the slot a reference points at
func (b *Build) Slot(ref SlotRef) (*Slot, error) {
	index, err := b.CanonicalIndex(ref)
	if err != nil {
		return nil, err
	}
	return b.slots[index], nil
}

// CanonicalIndex returns the position of a slot in canonical order
func (b *Build) CanonicalIndex(ref SlotRef) (int, error) {
	switch ref.Kind {
	case SlotBulkhead:
		if ref.Index == 0 {
			return 0, nil
		}
	case SlotCommon:
		if catalog.Role(ref.Index).Valid() {
			return 1 + ref.Index, nil
		}
	case SlotHardpoint:
		if ref.Index >= 0 && ref.Index < len(b.ship.Hardpoints) {
			return 1 + catalog.CommonRoleCount + ref.Index, nil
		}
	case SlotInternal:
		if ref.Index >= 0 && ref.Index < len(b.ship.Internal) {
			return 1 + catalog.CommonRoleCount + len(b.ship.Hardpoints) + ref.Index, nil
		}
	}
	return 0, shared.NewValidationError("slot", fmt.Sprintf("%s does not exist on %s", ref, b.ship.ID))
}

// SlotAt returns the slot at a canonical index
func (b *Build) SlotAt(index int) (*Slot, error) {
	if index < 0 || index >= len(b.slots) {
		return nil, shared.NewValidationError("slot", fmt.Sprintf("slot index %d out of range", index))
	}
	return b.slots[index], nil
}

// Lookup finds a component id in the catalog scope of a slot kind, without
// checking whether it is legal for the slot.
func (b *Build) Lookup(ref SlotRef, id string) (*catalog.ComponentRecord, bool) {
	switch ref.Kind {
	case SlotBulkhead:
		record, ok := b.set.Bulkheads()[id]
		return record, ok
	case SlotCommon:
		return b.catalog.CommonComponent(catalog.Role(ref.Index), id)
	case SlotHardpoint:
		return b.catalog.Hardpoint(id)
	case SlotInternal:
		return b.catalog.Internal(id)
	}
	return nil, false
}

// Options returns the legal components for a slot keyed by id
func (b *Build) Options(ref SlotRef) (catalog.Pool, error) {
	slot, err := b.Slot(ref)
	if err != nil {
		return nil, err
	}
	switch ref.Kind {
	case SlotBulkhead:
		return b.set.Bulkheads(), nil
	case SlotCommon:
		return b.set.Common(catalog.Role(ref.Index)), nil
	case SlotHardpoint:
		return b.set.HardpointsForClass(slot.Class()), nil
	default:
		merged := make(catalog.Pool)
		for _, pool := range b.set.InternalsForClass(slot.Class()) {
			for id, record := range pool {
				merged[id] = record
			}
		}
		return merged, nil
	}
}

// resolve validates id against the slot and returns the record to assign
// (nil for Unassigned). It never mutates the build.
func (b *Build) resolve(slot *Slot, id string) (*catalog.ComponentRecord, error) {
	ref := slot.Ref()
	if id == Unassigned {
		if ref.Kind.Mandatory() {
			return nil, shared.NewInvalidComponentForSlotError(ref.String(), id, "slot cannot be empty")
		}
		return nil, nil
	}

	record, ok := b.Lookup(ref, id)
	if !ok {
		return nil, shared.NewInvalidComponentForSlotError(ref.String(), id, "no such component for this slot")
	}
	if ref.Kind != SlotBulkhead && record.Class > slot.Class() {
		return nil, shared.NewClassOutOfRangeError(ref.String(), id, record.Class, slot.Class())
	}

	var legal bool
	switch ref.Kind {
	case SlotBulkhead:
		legal = true
	case SlotCommon:
		_, legal = b.set.Common(catalog.Role(ref.Index))[id]
	case SlotHardpoint:
		_, legal = b.set.HardpointsForClass(slot.Class())[id]
	case SlotInternal:
		_, legal = b.set.InternalsForClass(slot.Class())[record.Group][id]
	}
	if !legal {
		return nil, shared.NewInvalidComponentForSlotError(ref.String(), id, "not legal for this slot on "+b.ship.ID)
	}
	return record, nil
}

// Select assigns a component to a slot. Unassigned empties hardpoint and
// internal slots. Modifications on the slot are dropped since they belonged
// to the previous component.
func (b *Build) Select(ref SlotRef, componentID string) error {
	slot, err := b.Slot(ref)
	if err != nil {
		return err
	}
	record, err := b.resolve(slot, componentID)
	if err != nil {
		return err
	}

	slot.component = record
	slot.modifications = nil
	b.recompute()
	return nil
}

// SelectBulkhead selects the ship's bulkhead by position
func (b *Build) SelectBulkhead(index int) error {
	if index < 0 || index >= len(b.ship.Bulkheads) {
		return shared.NewInvalidComponentForSlotError(BulkheadRef().String(), fmt.Sprint(index), "no such bulkhead")
	}
	return b.Select(BulkheadRef(), b.ship.Bulkheads[index].ID)
}

// ToggleEnabled flips whether a slot draws power
func (b *Build) ToggleEnabled(ref SlotRef) error {
	slot, err := b.Slot(ref)
	if err != nil {
		return err
	}
	if ref.Kind == SlotBulkhead {
		return shared.NewValidationError("slot", "bulkheads cannot be disabled")
	}
	slot.enabled = !slot.enabled
	b.recompute()
	return nil
}

// ToggleCost flips whether a slot's cost counts towards the totals. Only the
// cost aggregate is recomputed.
func (b *Build) ToggleCost(ref SlotRef) error {
	slot, err := b.Slot(ref)
	if err != nil {
		return err
	}
	slot.includeInCost = !slot.includeInCost

	stats := b.stats.clone()
	applyCost(&stats, b.ship, b.slots)
	b.stats = stats
	return nil
}

// ApplyModification adds or updates a modification on the slot's component.
// The value is quantized to the modification resolution before it is
// checked; a quantized value of 0 removes the modification.
func (b *Build) ApplyModification(ref SlotRef, id ModificationID, value float64) error {
	slot, err := b.Slot(ref)
	if err != nil {
		return err
	}
	if slot.IsEmpty() {
		return shared.NewInvalidModificationError(ref.String(), string(id), "slot is empty")
	}
	value = QuantizeModification(value)
	if err := checkModification(id, value, slot.Component()); err != nil {
		return shared.NewInvalidModificationError(ref.String(), string(id), err.Error())
	}

	slot.setModification(id, value)
	b.recompute()
	return nil
}

// Reset restores the stock loadout with default flags
func (b *Build) Reset() {
	for i, slot := range b.slots {
		slot.component = b.baseline[i].component
		slot.enabled = true
		slot.includeInCost = true
		slot.modifications = nil
	}
	b.recompute()
}

// Clone returns an independent copy of the build with its own component set
func (b *Build) Clone() *Build {
	c := &Build{
		catalog:  b.catalog,
		ship:     b.ship,
		set:      catalog.NewComponentSet(b.catalog, b.ship),
		formula:  b.formula,
		slots:    make([]*Slot, len(b.slots)),
		baseline: append([]baselineEntry(nil), b.baseline...),
		stats:    b.stats.clone(),
	}
	for i, slot := range b.slots {
		c.slots[i] = slot.clone()
	}
	return c
}

// JumpRange evaluates the jump formula at an arbitrary total mass
func (b *Build) JumpRange(mass float64) float64 {
	return b.formula.JumpRange(mass, fsdProfile(b.Common(catalog.RoleFrameShiftDrive)))
}

// JumpCurve samples the jump range between unladen and laden mass at unit
// steps. The sequence reflects the build as it is when JumpCurve is called.
func (b *Build) JumpCurve() iter.Seq[RangeSample] {
	fsd := fsdProfile(b.Common(catalog.RoleFrameShiftDrive))
	return jumpCurve(b.formula, fsd, b.stats.UnladenMass, b.stats.LadenMass)
}

func (b *Build) recompute() {
	b.stats = calculateStats(b.ship, b.slots, b.baseline, b.formula)
}
