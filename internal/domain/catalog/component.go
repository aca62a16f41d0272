package catalog

import "fmt"

// Category partitions the catalog by the kind of slot a component mounts in.
// Component ids are unique within a category (within a role group for
// common components, within a ship for bulkheads).
type Category string

const (
	CategoryBulkhead  Category = "bulkhead"
	CategoryCommon    Category = "common"
	CategoryHardpoint Category = "hardpoint"
	CategoryInternal  Category = "internal"
)

// Group is the functional category of a component
type Group string

const (
	GroupBulkheads Group = "bulkheads"

	GroupPowerPlant       Group = "power_plant"
	GroupThrusters        Group = "thrusters"
	GroupFrameShiftDrive  Group = "frame_shift_drive"
	GroupLifeSupport      Group = "life_support"
	GroupPowerDistributor Group = "power_distributor"
	GroupSensors          Group = "sensors"
	GroupFuelTank         Group = "fuel_tank"

	GroupPulseLaser       Group = "pulse_laser"
	GroupBeamLaser        Group = "beam_laser"
	GroupMultiCannon      Group = "multi_cannon"
	GroupHeatSinkLauncher Group = "heat_sink_launcher"
	GroupChaffLauncher    Group = "chaff_launcher"

	GroupCargoRack        Group = "cargo_rack"
	GroupInternalFuelTank Group = "internal_fuel_tank"
	GroupShieldGenerator  Group = "shield_generator"
	GroupShieldCellBank   Group = "shield_cell_bank"
	GroupFuelScoop        Group = "fuel_scoop"
	GroupRefinery         Group = "refinery"
)

var groupCategories = map[Group]Category{
	GroupBulkheads: CategoryBulkhead,

	GroupPowerPlant:       CategoryCommon,
	GroupThrusters:        CategoryCommon,
	GroupFrameShiftDrive:  CategoryCommon,
	GroupLifeSupport:      CategoryCommon,
	GroupPowerDistributor: CategoryCommon,
	GroupSensors:          CategoryCommon,
	GroupFuelTank:         CategoryCommon,

	GroupPulseLaser:       CategoryHardpoint,
	GroupBeamLaser:        CategoryHardpoint,
	GroupMultiCannon:      CategoryHardpoint,
	GroupHeatSinkLauncher: CategoryHardpoint,
	GroupChaffLauncher:    CategoryHardpoint,

	GroupCargoRack:        CategoryInternal,
	GroupInternalFuelTank: CategoryInternal,
	GroupShieldGenerator:  CategoryInternal,
	GroupShieldCellBank:   CategoryInternal,
	GroupFuelScoop:        CategoryInternal,
	GroupRefinery:         CategoryInternal,
}

// Category returns the slot category the group mounts in
func (g Group) Category() (Category, bool) {
	c, ok := groupCategories[g]
	return c, ok
}

// ProvidesFuel reports whether components of this group add fuel capacity
func (g Group) ProvidesFuel() bool {
	return g == GroupFuelTank || g == GroupInternalFuelTank
}

// ProvidesCargo reports whether components of this group add cargo capacity
func (g Group) ProvidesCargo() bool {
	return g == GroupCargoRack
}

// ComponentRecord is an immutable catalog entry. Records are loaded once and
// shared by reference between the catalog, component sets and slots.
type ComponentRecord struct {
	ID      string
	Group   Group
	Class   int
	Rating  string
	Name    string
	Mass    float64
	Power   float64 // draw; generation for power plants
	Cost    int64
	MaxMass float64 // 0 = no ceiling

	// Group-specific performance fields
	OptimalMass    float64 // frame shift drive
	MaxFuelPerJump float64 // frame shift drive
	Capacity       float64 // fuel tanks and cargo racks
	ShieldStrength float64 // shield generators
}

// FitsShipMass reports whether a ship of the given mass may fit this component
func (r *ComponentRecord) FitsShipMass(shipMass float64) bool {
	return r.MaxMass == 0 || shipMass <= r.MaxMass
}

// Designation returns the class/rating label, e.g. "6A"
func (r *ComponentRecord) Designation() string {
	return fmt.Sprintf("%d%s", r.Class, r.Rating)
}

func (r *ComponentRecord) String() string {
	return fmt.Sprintf("%s %s (%s)", r.Designation(), r.Name, r.ID)
}
