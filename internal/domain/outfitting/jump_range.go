package outfitting

import (
	"iter"
	"math"
)

// FSDProfile carries the frame shift drive values the jump range depends on
type FSDProfile struct {
	Class          int
	Rating         string
	OptimalMass    float64
	MaxFuelPerJump float64
}

// JumpFormula computes the jump range of a ship of the given total mass.
// Implementations must be monotonically non-increasing in mass.
type JumpFormula interface {
	JumpRange(mass float64, fsd FSDProfile) float64
}

// FSDJumpFormula implements the frame shift drive law
//
//	range = (optimalMass / mass) * (fuel / fuelMultiplier) ^ (1 / fuelPower)
//
// with fuel = the drive's maximum fuel per jump. The multiplier depends on
// the drive rating and the power on its class.
type FSDJumpFormula struct{}

var fsdFuelMultipliers = map[string]float64{
	"A": 0.012,
	"B": 0.010,
	"C": 0.008,
	"D": 0.010,
	"E": 0.011,
}

// FSDFuelMultiplier returns the rating constant of a drive (0 if unknown)
func FSDFuelMultiplier(rating string) float64 {
	return fsdFuelMultipliers[rating]
}

// FSDFuelPower returns the class constant of a drive: 2.00 for class 2,
// rising 0.15 per class.
func FSDFuelPower(class int) float64 {
	return 2.0 + 0.15*float64(class-2)
}

// JumpRange returns the range in light years, 0 when undefined
func (FSDJumpFormula) JumpRange(mass float64, fsd FSDProfile) float64 {
	multiplier := FSDFuelMultiplier(fsd.Rating)
	power := FSDFuelPower(fsd.Class)
	if mass <= 0 || multiplier == 0 || power <= 0 || fsd.MaxFuelPerJump <= 0 {
		return 0
	}
	return fsd.OptimalMass / mass * math.Pow(fsd.MaxFuelPerJump/multiplier, 1/power)
}

// RangeSample is one point of a jump range curve
type RangeSample struct {
	Mass  float64
	Range float64
}

const curveEpsilon = 1e-9

// jumpCurve samples formula over [from, to] at unit mass steps, ending
// exactly at to. Every iteration of the returned sequence recomputes it.
func jumpCurve(formula JumpFormula, fsd FSDProfile, from, to float64) iter.Seq[RangeSample] {
	return func(yield func(RangeSample) bool) {
		if to < from {
			return
		}
		steps := int(math.Floor(to - from + curveEpsilon))
		last := from
		for i := 0; i <= steps; i++ {
			mass := from + float64(i)
			if math.Abs(mass-to) < curveEpsilon {
				mass = to
			}
			if !yield(RangeSample{Mass: mass, Range: formula.JumpRange(mass, fsd)}) {
				return
			}
			last = mass
		}
		if last < to {
			yield(RangeSample{Mass: to, Range: formula.JumpRange(to, fsd)})
		}
	}
}
