package catalog

// ComponentSet is the per-ship view of the catalog: every pool pre-filtered
// against the ship's slot classes and mass, plus memo tables for per-class
// subsets.
//
// The ship mass used for filtering is the template's MaxMass, which never
// changes for the lifetime of a build, so memoized subsets are never
// invalidated. A ComponentSet is owned by a single build and is not safe for
// concurrent use.
type ComponentSet struct {
	ship     *ShipTemplate
	shipMass float64

	bulkheads  Pool
	common     [CommonRoleCount]Pool
	hardpoints Pool
	internals  map[Group]Pool

	internalGroups []Group

	hardpointsByClass map[int]Pool
	internalsByClass  map[int]map[Group]Pool
}

// NewComponentSet builds the component set of a ship
func NewComponentSet(cat *Catalog, ship *ShipTemplate) *ComponentSet {
	set := &ComponentSet{
		ship:              ship,
		shipMass:          ship.MaxMass,
		bulkheads:         make(Pool, len(ship.Bulkheads)),
		internals:         make(map[Group]Pool),
		hardpointsByClass: make(map[int]Pool),
		internalsByClass:  make(map[int]map[Group]Pool),
	}

	for _, bulkhead := range ship.Bulkheads {
		set.bulkheads[bulkhead.ID] = bulkhead
	}

	for _, role := range Roles() {
		slotClass := ship.Common[role]
		set.common[role] = Filter(cat.CommonPool(role), slotClass, role.MinClass(slotClass), set.shipMass)
	}

	_, maxHardpointClass := ship.HardpointCapacity()
	set.hardpoints = Filter(cat.AllHardpoints(), maxHardpointClass, 0, set.shipMass)

	maxInternalClass := ship.MaxInternalClass()
	for _, group := range cat.InternalGroups() {
		set.internals[group] = Filter(cat.InternalPool(group), maxInternalClass, 0, set.shipMass)
	}
	set.internalGroups = sortedGroups(set.internals)

	return set
}

// Ship returns the template this set was built for
func (s *ComponentSet) Ship() *ShipTemplate {
	return s.ship
}

// Bulkheads returns the ship's bulkhead records keyed by id
func (s *ComponentSet) Bulkheads() Pool {
	return s.bulkheads
}

// Common returns the legal components for a common role
func (s *ComponentSet) Common(role Role) Pool {
	return s.common[role]
}

// Hardpoints returns the global hardpoint pool of the ship
func (s *ComponentSet) Hardpoints() Pool {
	return s.hardpoints
}

// HardpointsForClass returns the legal components for a hardpoint of the
// given class. The result is memoized: repeated calls with the same class
// return the same map.
func (s *ComponentSet) HardpointsForClass(class int) Pool {
	if pool, ok := s.hardpointsByClass[class]; ok {
		return pool
	}
	pool := Filter(s.hardpoints, class, HardpointMinClass(class), s.shipMass)
	s.hardpointsByClass[class] = pool
	return pool
}

// InternalsForClass returns the legal components for an internal slot of the
// given class, grouped by functional group. Groups without a single legal
// component are omitted. The result is memoized like HardpointsForClass.
func (s *ComponentSet) InternalsForClass(class int) map[Group]Pool {
	if groups, ok := s.internalsByClass[class]; ok {
		return groups
	}
	groups := make(map[Group]Pool)
	for _, group := range s.internalGroups {
		pool := Filter(s.internals[group], class, 0, s.shipMass)
		if len(pool) > 0 {
			groups[group] = pool
		}
	}
	s.internalsByClass[class] = groups
	return groups
}

// InternalGroups returns the internal groups known to the set, sorted
func (s *ComponentSet) InternalGroups() []Group {
	return s.internalGroups
}
