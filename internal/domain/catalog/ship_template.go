package catalog

// Loadout lists component ids per slot. Ship templates use it for the stock
// (as-delivered) assignment.
type Loadout struct {
	Bulkhead   int
	Common     [CommonRoleCount]string
	Hardpoints []string
	Internal   []string
}

// ShipTemplate holds the static definition of a ship type
//
// Invariants:
// - len(Defaults.Hardpoints) == len(Hardpoints)
// - len(Defaults.Internal) == len(Internal)
// - Defaults.Bulkhead indexes Bulkheads
type ShipTemplate struct {
	ID           string
	Name         string
	Manufacturer string

	HullMass float64
	HullCost int64
	// MaxMass is the ship's mass at full load; components with a lower
	// MaxMass cannot be fitted.
	MaxMass float64

	Speed   int
	Boost   int
	Armour  int
	Shields int

	Bulkheads  []*ComponentRecord
	Common     [CommonRoleCount]int
	Hardpoints []int // class per physical mount, 0 = utility
	Internal   []int // class per physical internal slot

	Defaults Loadout
}

// HardpointCapacity returns the number of hardpoints and the largest class
func (t *ShipTemplate) HardpointCapacity() (count, maxClass int) {
	for _, class := range t.Hardpoints {
		if class > maxClass {
			maxClass = class
		}
	}
	return len(t.Hardpoints), maxClass
}

// InternalCapacity returns the number of internal slots per class
func (t *ShipTemplate) InternalCapacity() map[int]int {
	capacity := make(map[int]int)
	for _, class := range t.Internal {
		capacity[class]++
	}
	return capacity
}

// MaxInternalClass returns the largest internal slot class
func (t *ShipTemplate) MaxInternalClass() int {
	maxClass := 0
	for _, class := range t.Internal {
		if class > maxClass {
			maxClass = class
		}
	}
	return maxClass
}

// SlotCount returns the total number of slots including the bulkhead slot
func (t *ShipTemplate) SlotCount() int {
	return 1 + CommonRoleCount + len(t.Hardpoints) + len(t.Internal)
}
