package catalog

import (
	"fmt"
	"sort"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// Catalog is the process-wide registry of components and ship templates.
// It is built once at startup and never mutated afterwards, so it can be
// shared between builds without locking.
type Catalog struct {
	version string

	common     [CommonRoleCount]Pool
	hardpoints map[Group]Pool
	internals  map[Group]Pool

	hardpointByID map[string]*ComponentRecord
	internalByID  map[string]*ComponentRecord

	ships     map[string]*ShipTemplate
	shipOrder []string
}

// NewCatalog builds a catalog from component records and ship templates.
//
// Bulkhead records are supplied per ship (ShipTemplate.Bulkheads) and must
// not appear in components. Ids must be unique within their scope.
func NewCatalog(version string, components []ComponentRecord, ships []ShipTemplate) (*Catalog, error) {
	c := &Catalog{
		version:       version,
		hardpoints:    make(map[Group]Pool),
		internals:     make(map[Group]Pool),
		hardpointByID: make(map[string]*ComponentRecord),
		internalByID:  make(map[string]*ComponentRecord),
		ships:         make(map[string]*ShipTemplate),
	}
	for i := range c.common {
		c.common[i] = make(Pool)
	}

	for i := range components {
		record := &components[i]
		if err := c.addComponent(record); err != nil {
			return nil, err
		}
	}

	for i := range ships {
		ship := &ships[i]
		if err := c.addShip(ship); err != nil {
			return nil, err
		}
	}
	sort.Strings(c.shipOrder)

	return c, nil
}

func (c *Catalog) addComponent(record *ComponentRecord) error {
	if !ValidComponentID(record.ID) {
		return shared.NewValidationError("id", fmt.Sprintf("component %q: id %q must be %d letters or digits", record.Name, record.ID, ComponentIDLength))
	}
	category, ok := record.Group.Category()
	if !ok {
		return shared.NewValidationError("group", fmt.Sprintf("component %s has unknown group %q", record.ID, record.Group))
	}

	switch category {
	case CategoryCommon:
		role, _ := RoleForGroup(record.Group)
		if _, exists := c.common[role][record.ID]; exists {
			return duplicateID(record)
		}
		c.common[role][record.ID] = record

	case CategoryHardpoint:
		if _, exists := c.hardpointByID[record.ID]; exists {
			return duplicateID(record)
		}
		c.hardpointByID[record.ID] = record
		if c.hardpoints[record.Group] == nil {
			c.hardpoints[record.Group] = make(Pool)
		}
		c.hardpoints[record.Group][record.ID] = record

	case CategoryInternal:
		if _, exists := c.internalByID[record.ID]; exists {
			return duplicateID(record)
		}
		c.internalByID[record.ID] = record
		if c.internals[record.Group] == nil {
			c.internals[record.Group] = make(Pool)
		}
		c.internals[record.Group][record.ID] = record

	default:
		return shared.NewValidationError("group", fmt.Sprintf("component %s: bulkheads belong to ship templates", record.ID))
	}
	return nil
}

// ComponentIDLength is the fixed width of every component id. Build codes
// rely on it to cut their slot section into units.
const ComponentIDLength = 2

// ValidComponentID reports whether id is ComponentIDLength ASCII letters or digits
func ValidComponentID(id string) bool {
	if len(id) != ComponentIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

func duplicateID(record *ComponentRecord) error {
	return shared.NewValidationError("id", fmt.Sprintf("duplicate component id %q in group %s", record.ID, record.Group))
}

func (c *Catalog) addShip(ship *ShipTemplate) error {
	if ship.ID == "" {
		return shared.NewValidationError("ship.id", "ship id cannot be empty")
	}
	if _, exists := c.ships[ship.ID]; exists {
		return shared.NewValidationError("ship.id", fmt.Sprintf("duplicate ship %q", ship.ID))
	}
	if len(ship.Bulkheads) == 0 {
		return shared.NewValidationError("ship.bulkheads", fmt.Sprintf("ship %s has no bulkheads", ship.ID))
	}
	if ship.Defaults.Bulkhead < 0 || ship.Defaults.Bulkhead >= len(ship.Bulkheads) {
		return shared.NewValidationError("ship.defaults.bulkhead", fmt.Sprintf("ship %s: default bulkhead %d out of range", ship.ID, ship.Defaults.Bulkhead))
	}
	if len(ship.Defaults.Hardpoints) != len(ship.Hardpoints) {
		return shared.NewValidationError("ship.defaults.hardpoints", fmt.Sprintf("ship %s: %d defaults for %d hardpoints",
			ship.ID, len(ship.Defaults.Hardpoints), len(ship.Hardpoints)))
	}
	if len(ship.Defaults.Internal) != len(ship.Internal) {
		return shared.NewValidationError("ship.defaults.internal", fmt.Sprintf("ship %s: %d defaults for %d internal slots",
			ship.ID, len(ship.Defaults.Internal), len(ship.Internal)))
	}
	for i, bulkhead := range ship.Bulkheads {
		if !ValidComponentID(bulkhead.ID) {
			return shared.NewValidationError("ship.bulkheads", fmt.Sprintf("ship %s: bulkhead %d id %q must be %d letters or digits", ship.ID, i, bulkhead.ID, ComponentIDLength))
		}
		if bulkhead.Group != GroupBulkheads {
			return shared.NewValidationError("ship.bulkheads", fmt.Sprintf("ship %s: bulkhead %d has group %q", ship.ID, i, bulkhead.Group))
		}
	}

	c.ships[ship.ID] = ship
	c.shipOrder = append(c.shipOrder, ship.ID)
	return nil
}

// Version identifies the reference data the catalog was loaded from
func (c *Catalog) Version() string {
	return c.version
}

// Ship returns the template for a ship id
func (c *Catalog) Ship(id string) (*ShipTemplate, error) {
	ship, ok := c.ships[id]
	if !ok {
		return nil, shared.NewUnknownShipError(id)
	}
	return ship, nil
}

// Ships returns all ship templates ordered by id
func (c *Catalog) Ships() []*ShipTemplate {
	ships := make([]*ShipTemplate, 0, len(c.shipOrder))
	for _, id := range c.shipOrder {
		ships = append(ships, c.ships[id])
	}
	return ships
}

// CommonPool returns every catalog record serving a role
func (c *Catalog) CommonPool(role Role) Pool {
	return c.common[role]
}

// CommonComponent looks up a component in a role's group
func (c *Catalog) CommonComponent(role Role, id string) (*ComponentRecord, bool) {
	record, ok := c.common[role][id]
	return record, ok
}

// Hardpoint looks up a hardpoint component by id
func (c *Catalog) Hardpoint(id string) (*ComponentRecord, bool) {
	record, ok := c.hardpointByID[id]
	return record, ok
}

// Internal looks up an internal component by id
func (c *Catalog) Internal(id string) (*ComponentRecord, bool) {
	record, ok := c.internalByID[id]
	return record, ok
}

// AllHardpoints returns every hardpoint record keyed by id
func (c *Catalog) AllHardpoints() Pool {
	return c.hardpointByID
}

// InternalGroups returns the internal groups present in the catalog, sorted
func (c *Catalog) InternalGroups() []Group {
	return sortedGroups(c.internals)
}

// InternalPool returns the records of one internal group
func (c *Catalog) InternalPool(group Group) Pool {
	return c.internals[group]
}

// ComponentSetFor builds the component set of a ship by id
func (c *Catalog) ComponentSetFor(shipID string) (*ComponentSet, error) {
	ship, err := c.Ship(shipID)
	if err != nil {
		return nil, err
	}
	return NewComponentSet(c, ship), nil
}

func sortedGroups(pools map[Group]Pool) []Group {
	groups := make([]Group, 0, len(pools))
	for g := range pools {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	return groups
}
