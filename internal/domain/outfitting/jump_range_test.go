package outfitting_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/test/helpers"
)

func TestFSDFuelPower(t *testing.T) {
	assert.InDelta(t, 2.0, outfitting.FSDFuelPower(2), 1e-12)
	assert.InDelta(t, 2.15, outfitting.FSDFuelPower(3), 1e-12)
	assert.InDelta(t, 2.6, outfitting.FSDFuelPower(6), 1e-12)
}

func TestFSDFuelMultiplier(t *testing.T) {
	assert.Equal(t, 0.012, outfitting.FSDFuelMultiplier("A"))
	assert.Equal(t, 0.011, outfitting.FSDFuelMultiplier("E"))
	assert.Zero(t, outfitting.FSDFuelMultiplier("Z"))
}

func TestFSDJumpFormula(t *testing.T) {
	formula := outfitting.FSDJumpFormula{}
	fsd := outfitting.FSDProfile{Class: 6, Rating: "A", OptimalMass: 1800, MaxFuelPerJump: 8}

	tests := []struct {
		name string
		mass float64
		fsd  outfitting.FSDProfile
		want float64
	}{
		{name: "class 6A", mass: 1000, fsd: fsd, want: 1800.0 / 1000 * math.Pow(8/0.012, 1/2.6)},
		{name: "zero mass", mass: 0, fsd: fsd, want: 0},
		{name: "unknown rating", mass: 1000, fsd: outfitting.FSDProfile{Class: 6, Rating: "Z", OptimalMass: 1800, MaxFuelPerJump: 8}, want: 0},
		{name: "no fuel", mass: 1000, fsd: outfitting.FSDProfile{Class: 6, Rating: "A", OptimalMass: 1800}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, formula.JumpRange(tt.mass, tt.fsd), 1e-9)
		})
	}
}

func TestJumpRange_NonIncreasingInMass(t *testing.T) {
	// Arrange
	build := newAnaconda(t)
	require.NoError(t, build.Select(outfitting.CommonRef(catalog.RoleFrameShiftDrive), "6A"))

	// Act & Assert
	previous := math.Inf(1)
	for mass := 1.0; mass <= 3000; mass += 7.5 {
		current := build.JumpRange(mass)
		assert.LessOrEqual(t, current, previous, "mass %.1f", mass)
		previous = current
	}
}

func TestJumpCurve_SpansUnladenToLaden(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	stats := build.Stats()

	// Act
	var samples []outfitting.RangeSample
	for sample := range build.JumpCurve() {
		samples = append(samples, sample)
	}

	// Assert
	require.Len(t, samples, 7)
	assert.Equal(t, stats.UnladenMass, samples[0].Mass)
	assert.InDelta(t, stats.UnladenJumpRange, samples[0].Range, 1e-9)
	assert.Equal(t, stats.LadenMass, samples[len(samples)-1].Mass)
	assert.InDelta(t, stats.LadenJumpRange, samples[len(samples)-1].Range, 1e-9)
	for i := 1; i < len(samples); i++ {
		assert.Greater(t, samples[i].Mass, samples[i-1].Mass)
		assert.LessOrEqual(t, samples[i].Range, samples[i-1].Range)
	}
}

func TestJumpCurve_StopsEarly(t *testing.T) {
	// Arrange
	build := newAnaconda(t)

	// Act
	count := 0
	for range build.JumpCurve() {
		count++
		if count == 3 {
			break
		}
	}

	// Assert
	assert.Equal(t, 3, count)
}

type constantFormula float64

func (c constantFormula) JumpRange(float64, outfitting.FSDProfile) float64 {
	return float64(c)
}

func TestWithJumpFormula(t *testing.T) {
	// Arrange & Act
	build, err := outfitting.NewBuild(helpers.NewTestCatalog(t), "sidewinder", outfitting.WithJumpFormula(constantFormula(12.5)))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 12.5, build.Stats().UnladenJumpRange)
	assert.Equal(t, 12.5, build.Stats().LadenJumpRange)
	assert.Equal(t, 12.5, build.JumpRange(1))
}
