package outfitting

import "github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"

// Stats is the derived statistics block of a build. It is a pure function of
// the slot state and the baseline, recomputed after every mutation and
// replaced as a whole.
type Stats struct {
	HullMass      float64
	Mass          float64
	UnladenMass   float64
	LadenMass     float64
	FuelCapacity  float64
	CargoCapacity float64

	PowerGenerated float64
	PowerConsumed  float64
	PowerBalance   float64

	TotalCost int64 // components with IncludeInCost
	ShipCost  int64 // hull + TotalCost

	UnladenJumpRange float64
	LadenJumpRange   float64

	RetrofitTotal   int64
	RetrofitChanges []RetrofitChange
}

// RetrofitChange records a slot whose assignment differs from stock
type RetrofitChange struct {
	Slot     SlotRef
	FromID   string
	ToID     string
	FromCost int64
	ToCost   int64
}

// Delta returns the cost difference of the change
func (c RetrofitChange) Delta() int64 {
	return c.ToCost - c.FromCost
}

type baselineEntry struct {
	component *catalog.ComponentRecord
}

func (e baselineEntry) id() string {
	if e.component == nil {
		return Unassigned
	}
	return e.component.ID
}

func (e baselineEntry) cost() int64 {
	if e.component == nil {
		return 0
	}
	return e.component.Cost
}

// calculateStats derives the full statistics block from slot state
func calculateStats(ship *catalog.ShipTemplate, slots []*Slot, baseline []baselineEntry, formula JumpFormula) Stats {
	stats := Stats{
		HullMass: ship.HullMass,
		Mass:     ship.HullMass,
	}

	var fsd FSDProfile
	for _, slot := range slots {
		component := slot.Component()
		if component == nil {
			continue
		}

		stats.Mass += slot.Mass()

		switch {
		case component.Group.ProvidesFuel():
			stats.FuelCapacity += slot.Capacity()
		case component.Group.ProvidesCargo():
			stats.CargoCapacity += slot.Capacity()
		}

		switch component.Group {
		case catalog.GroupPowerPlant:
			stats.PowerGenerated += slot.Power()
		case catalog.GroupFrameShiftDrive:
			fsd = fsdProfile(slot)
			if slot.Enabled() {
				stats.PowerConsumed += slot.Power()
			}
		default:
			if slot.Enabled() {
				stats.PowerConsumed += slot.Power()
			}
		}
	}

	stats.PowerBalance = stats.PowerGenerated - stats.PowerConsumed
	stats.UnladenMass = stats.Mass
	stats.LadenMass = stats.Mass + stats.CargoCapacity + stats.FuelCapacity
	stats.UnladenJumpRange = formula.JumpRange(stats.UnladenMass, fsd)
	stats.LadenJumpRange = formula.JumpRange(stats.LadenMass, fsd)

	applyCost(&stats, ship, slots)
	applyRetrofit(&stats, slots, baseline)

	return stats
}

func applyCost(stats *Stats, ship *catalog.ShipTemplate, slots []*Slot) {
	stats.TotalCost = 0
	for _, slot := range slots {
		if slot.IncludeInCost() {
			stats.TotalCost += slot.Cost()
		}
	}
	stats.ShipCost = ship.HullCost + stats.TotalCost
}

func applyRetrofit(stats *Stats, slots []*Slot, baseline []baselineEntry) {
	stats.RetrofitTotal = 0
	stats.RetrofitChanges = nil
	for i, slot := range slots {
		stock := baseline[i]
		if slot.ComponentID() == stock.id() {
			continue
		}
		change := RetrofitChange{
			Slot:     slot.Ref(),
			FromID:   stock.id(),
			ToID:     slot.ComponentID(),
			FromCost: stock.cost(),
			ToCost:   slot.Cost(),
		}
		stats.RetrofitChanges = append(stats.RetrofitChanges, change)
		stats.RetrofitTotal += change.Delta()
	}
}

func fsdProfile(slot *Slot) FSDProfile {
	component := slot.Component()
	return FSDProfile{
		Class:          component.Class,
		Rating:         component.Rating,
		OptimalMass:    slot.modified(ModOptimalMass, component.OptimalMass),
		MaxFuelPerJump: slot.modified(ModMaxFuel, component.MaxFuelPerJump),
	}
}

func (s Stats) clone() Stats {
	c := s
	if s.RetrofitChanges != nil {
		c.RetrofitChanges = make([]RetrofitChange, len(s.RetrofitChanges))
		copy(c.RetrofitChanges, s.RetrofitChanges)
	}
	return c
}
