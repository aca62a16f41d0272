package outfitting

import (
	"fmt"
	"math"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
)

// ModificationID names the component stat a modification scales
type ModificationID string

const (
	ModMass        ModificationID = "mass"
	ModPower       ModificationID = "power"
	ModOptimalMass ModificationID = "optimal_mass"
	ModMaxFuel     ModificationID = "max_fuel"
	ModCapacity    ModificationID = "capacity"
)

// ModificationScale is the fixed-point resolution of modification values.
// Values are rounded to 1/ModificationScale when applied so that they survive
// the build code exactly.
const ModificationScale = 10000

// MaxModification bounds the magnitude of a modification value so that its
// scaled form always fits in an int64.
const MaxModification = 1e6

// Modification scales one stat of a slot's component: effective = base * (1 + Value)
type Modification struct {
	ID    ModificationID
	Value float64
}

// QuantizeModification rounds a value to the modification resolution
func QuantizeModification(value float64) float64 {
	return math.Round(value*ModificationScale) / ModificationScale
}

// checkModification validates an already quantized modification against the
// component it targets
func checkModification(id ModificationID, value float64, component *catalog.ComponentRecord) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("value must be finite")
	}
	if value > MaxModification {
		return fmt.Errorf("value %.4f exceeds %g", value, float64(MaxModification))
	}
	if value <= -1 {
		return fmt.Errorf("value %.4f would make the stat non-positive", value)
	}

	switch id {
	case ModMass, ModPower:
		return nil
	case ModOptimalMass, ModMaxFuel:
		if component.Group != catalog.GroupFrameShiftDrive {
			return fmt.Errorf("only applies to frame shift drives")
		}
		return nil
	case ModCapacity:
		if !component.Group.ProvidesFuel() && !component.Group.ProvidesCargo() {
			return fmt.Errorf("only applies to fuel tanks and cargo racks")
		}
		return nil
	default:
		return fmt.Errorf("unknown modification")
	}
}
