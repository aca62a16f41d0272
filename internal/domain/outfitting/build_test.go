package outfitting_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
	"github.com/cmmcleod/coriolis-sub002/test/helpers"
)

func newSidewinder(t *testing.T) *outfitting.Build {
	t.Helper()
	build, err := outfitting.NewBuild(helpers.NewTestCatalog(t), "sidewinder")
	require.NoError(t, err)
	return build
}

func TestNewBuild_SidewinderStockStats(t *testing.T) {
	// Arrange & Act
	build := newSidewinder(t)

	// Assert
	stats := build.Stats()
	assert.InDelta(t, 25.0, stats.HullMass, 1e-9)
	assert.InDelta(t, 42.9, stats.UnladenMass, 1e-9)
	assert.InDelta(t, 2.0, stats.FuelCapacity, 1e-9)
	assert.InDelta(t, 4.0, stats.CargoCapacity, 1e-9)
	assert.InDelta(t, 48.9, stats.LadenMass, 1e-9)
	assert.InDelta(t, 6.4, stats.PowerGenerated, 1e-9)
	assert.InDelta(t, 4.64, stats.PowerConsumed, 1e-9)
	assert.InDelta(t, 1.76, stats.PowerBalance, 1e-9)
	assert.Equal(t, int64(22420), stats.TotalCost)
	assert.Equal(t, int64(4070+22420), stats.ShipCost)
	assert.Zero(t, stats.RetrofitTotal)
	assert.Empty(t, stats.RetrofitChanges)

	expected := 48 / 42.9 * math.Sqrt(0.6/0.011)
	assert.InDelta(t, expected, stats.UnladenJumpRange, 1e-9)
	assert.InDelta(t, 48/48.9*math.Sqrt(0.6/0.011), stats.LadenJumpRange, 1e-9)
}

func TestNewBuild_UnknownShip(t *testing.T) {
	// Act
	_, err := outfitting.NewBuild(helpers.NewTestCatalog(t), "type_9")

	// Assert
	var unknown *shared.UnknownShipError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "type_9", unknown.ShipID)
}

func TestNewBuild_CanonicalSlotOrder(t *testing.T) {
	// Arrange & Act
	build := newSidewinder(t)

	// Assert
	slots := build.Slots()
	require.Len(t, slots, 1+catalog.CommonRoleCount+4+4)
	assert.Equal(t, outfitting.BulkheadRef(), slots[0].Ref())
	for i, role := range catalog.Roles() {
		assert.Equal(t, outfitting.CommonRef(role), slots[1+i].Ref())
	}
	assert.Equal(t, outfitting.HardpointRef(0), slots[8].Ref())
	assert.Equal(t, outfitting.InternalRef(3), slots[15].Ref())

	index, err := build.CanonicalIndex(outfitting.InternalRef(0))
	require.NoError(t, err)
	assert.Equal(t, 12, index)
}

func TestSelect_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		ref    outfitting.SlotRef
		id     string
		target interface{}
	}{
		{name: "unknown slot", ref: outfitting.HardpointRef(4), id: "01", target: new(*shared.ValidationError)},
		{name: "class above slot", ref: outfitting.HardpointRef(0), id: "0u", target: new(*shared.ClassOutOfRangeError)},
		{name: "unknown id", ref: outfitting.InternalRef(0), id: "zz", target: new(*shared.InvalidComponentForSlotError)},
		{name: "utility in weapon mount", ref: outfitting.HardpointRef(0), id: "2h", target: new(*shared.InvalidComponentForSlotError)},
		{name: "weapon in utility mount", ref: outfitting.HardpointRef(2), id: "01", target: new(*shared.ClassOutOfRangeError)},
		{name: "empty common slot", ref: outfitting.CommonRef(catalog.RoleThrusters), id: outfitting.Unassigned, target: new(*shared.InvalidComponentForSlotError)},
		{name: "empty bulkhead", ref: outfitting.BulkheadRef(), id: outfitting.Unassigned, target: new(*shared.InvalidComponentForSlotError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			build := newSidewinder(t)
			before := build.Stats()

			// Act
			err := build.Select(tt.ref, tt.id)

			// Assert
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %T: %v", err, err)
			assert.Equal(t, before, build.Stats(), "a rejected selection changes nothing")
		})
	}
}

func TestSelect_ExactClassRoleRejectsSmallerComponent(t *testing.T) {
	// Arrange
	build := newAnaconda(t)
	ref := outfitting.CommonRef(catalog.RoleLifeSupport)

	// Act
	err := build.Select(ref, "3E")

	// Assert
	var invalid *shared.InvalidComponentForSlotError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "5E", build.Common(catalog.RoleLifeSupport).ComponentID())
}

func TestSelect_ClassOutOfRangeDetails(t *testing.T) {
	// Arrange
	build := newSidewinder(t)

	// Act
	err := build.Select(outfitting.HardpointRef(0), "0u")

	// Assert
	var classErr *shared.ClassOutOfRangeError
	require.True(t, errors.As(err, &classErr))
	assert.Equal(t, 3, classErr.ComponentClass)
	assert.Equal(t, 1, classErr.SlotClass)
	assert.Equal(t, "hardpoint[0]", classErr.Slot)
}

func TestSelect_ClearsModifications(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	ref := outfitting.InternalRef(1)
	require.NoError(t, build.ApplyModification(ref, outfitting.ModCapacity, 0.5))

	// Act
	require.NoError(t, build.Select(ref, "01"))

	// Assert
	slot, err := build.Slot(ref)
	require.NoError(t, err)
	assert.Empty(t, slot.Modifications())
	assert.InDelta(t, 4.0, build.Stats().CargoCapacity, 1e-9)
}

func TestSelect_EmptyingAHardpoint(t *testing.T) {
	// Arrange
	build := newSidewinder(t)

	// Act
	require.NoError(t, build.Select(outfitting.HardpointRef(0), outfitting.Unassigned))

	// Assert
	stats := build.Stats()
	assert.InDelta(t, 40.9, stats.UnladenMass, 1e-9)
	assert.Equal(t, int64(22420-2200), stats.TotalCost)
	assert.Equal(t, int64(-2200), stats.RetrofitTotal)
}

func TestToggleEnabled(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	ref := outfitting.HardpointRef(0)

	// Act
	require.NoError(t, build.ToggleEnabled(ref))

	// Assert
	assert.InDelta(t, 4.64-0.39, build.Stats().PowerConsumed, 1e-9)
	assert.InDelta(t, 42.9, build.Stats().UnladenMass, 1e-9, "disabled slots still weigh")

	// Act - toggle back
	require.NoError(t, build.ToggleEnabled(ref))

	// Assert
	assert.InDelta(t, 4.64, build.Stats().PowerConsumed, 1e-9)
}

func TestToggleEnabled_PowerPlantStillGenerates(t *testing.T) {
	// Arrange
	build := newSidewinder(t)

	// Act
	require.NoError(t, build.ToggleEnabled(outfitting.CommonRef(catalog.RolePowerPlant)))

	// Assert
	assert.InDelta(t, 6.4, build.Stats().PowerGenerated, 1e-9)
}

func TestToggleEnabled_RejectsBulkhead(t *testing.T) {
	// Arrange
	build := newSidewinder(t)

	// Act
	err := build.ToggleEnabled(outfitting.BulkheadRef())

	// Assert
	var validationErr *shared.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.True(t, build.Bulkhead().Enabled())
}

func TestToggleCost(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	before := build.Stats()

	// Act
	require.NoError(t, build.ToggleCost(outfitting.HardpointRef(1)))

	// Assert
	after := build.Stats()
	assert.Equal(t, before.TotalCost-2200, after.TotalCost)
	assert.Equal(t, before.ShipCost-2200, after.ShipCost)
	assert.Equal(t, before.UnladenMass, after.UnladenMass)
	assert.Equal(t, before.PowerConsumed, after.PowerConsumed)
	assert.Equal(t, before.RetrofitTotal, after.RetrofitTotal)
}

func TestApplyModification(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	fsd := outfitting.CommonRef(catalog.RoleFrameShiftDrive)
	before := build.Stats()

	// Act
	require.NoError(t, build.ApplyModification(fsd, outfitting.ModOptimalMass, 0.1))

	// Assert
	after := build.Stats()
	assert.InDelta(t, before.UnladenJumpRange*1.1, after.UnladenJumpRange, 1e-9)
	assert.Equal(t, before.TotalCost, after.TotalCost)
}

func TestApplyModification_QuantizesValues(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	ref := outfitting.HardpointRef(0)

	// Act
	require.NoError(t, build.ApplyModification(ref, outfitting.ModMass, 0.123456))

	// Assert
	slot, err := build.Slot(ref)
	require.NoError(t, err)
	value, ok := slot.Modification(outfitting.ModMass)
	require.True(t, ok)
	assert.Equal(t, 0.1235, value)
	assert.InDelta(t, 2*1.1235, slot.Mass(), 1e-9)
}

func TestApplyModification_ZeroRemoves(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	ref := outfitting.HardpointRef(0)
	require.NoError(t, build.ApplyModification(ref, outfitting.ModPower, 0.2))
	require.NoError(t, build.ApplyModification(ref, outfitting.ModMass, -0.5))

	// Act
	require.NoError(t, build.ApplyModification(ref, outfitting.ModPower, 0.00001))

	// Assert
	slot, err := build.Slot(ref)
	require.NoError(t, err)
	assert.Equal(t, []outfitting.Modification{{ID: outfitting.ModMass, Value: -0.5}}, slot.Modifications())
	assert.InDelta(t, 41.9, build.Stats().UnladenMass, 1e-9)
}

func TestApplyModification_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		ref   outfitting.SlotRef
		id    outfitting.ModificationID
		value float64
	}{
		{name: "stat would vanish", ref: outfitting.HardpointRef(0), id: outfitting.ModMass, value: -1},
		{name: "rounds to minus one", ref: outfitting.HardpointRef(0), id: outfitting.ModMass, value: -0.99996},
		{name: "too large to encode", ref: outfitting.HardpointRef(0), id: outfitting.ModMass, value: 1e16},
		{name: "just above the limit", ref: outfitting.HardpointRef(0), id: outfitting.ModMass, value: outfitting.MaxModification + 0.001},
		{name: "not a number", ref: outfitting.HardpointRef(0), id: outfitting.ModMass, value: math.NaN()},
		{name: "optimal mass off a drive", ref: outfitting.HardpointRef(0), id: outfitting.ModOptimalMass, value: 0.1},
		{name: "max fuel off a drive", ref: outfitting.InternalRef(0), id: outfitting.ModMaxFuel, value: 0.1},
		{name: "capacity on a shield", ref: outfitting.InternalRef(0), id: outfitting.ModCapacity, value: 0.1},
		{name: "unknown stat", ref: outfitting.HardpointRef(0), id: outfitting.ModificationID("damage"), value: 0.1},
		{name: "empty slot", ref: outfitting.HardpointRef(2), id: outfitting.ModMass, value: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			build := newSidewinder(t)
			before := build.Stats()

			// Act
			err := build.ApplyModification(tt.ref, tt.id, tt.value)

			// Assert
			var modErr *shared.InvalidModificationError
			require.True(t, errors.As(err, &modErr), "got %v", err)
			assert.Equal(t, string(tt.id), modErr.ModificationID)
			assert.Equal(t, before, build.Stats())
		})
	}
}

func TestApplyModification_CapacityOnFuelAndCargo(t *testing.T) {
	// Arrange
	build := newSidewinder(t)

	// Act
	require.NoError(t, build.ApplyModification(outfitting.InternalRef(1), outfitting.ModCapacity, 0.5))
	require.NoError(t, build.ApplyModification(outfitting.CommonRef(catalog.RoleFuelTank), outfitting.ModCapacity, 1))

	// Assert
	stats := build.Stats()
	assert.InDelta(t, 6.0, stats.CargoCapacity, 1e-9)
	assert.InDelta(t, 4.0, stats.FuelCapacity, 1e-9)
	assert.InDelta(t, 42.9+6+4, stats.LadenMass, 1e-9)
}

func TestReset(t *testing.T) {
	// Arrange
	build := newSidewinder(t)
	stock := build.Stats()
	require.NoError(t, build.SelectBulkhead(2))
	require.NoError(t, build.Select(outfitting.HardpointRef(2), "2h"))
	require.NoError(t, build.ToggleEnabled(outfitting.HardpointRef(0)))
	require.NoError(t, build.ToggleCost(outfitting.InternalRef(0)))
	require.NoError(t, build.ApplyModification(outfitting.HardpointRef(1), outfitting.ModMass, 0.3))

	// Act
	build.Reset()

	// Assert
	assert.Equal(t, stock, build.Stats())
	for _, slot := range build.Slots() {
		assert.True(t, slot.Enabled(), slot.Ref().String())
		assert.True(t, slot.IncludeInCost(), slot.Ref().String())
		assert.Empty(t, slot.Modifications(), slot.Ref().String())
	}
}

func TestClone_IsIndependent(t *testing.T) {
	// Arrange
	original := newSidewinder(t)
	require.NoError(t, original.ApplyModification(outfitting.HardpointRef(0), outfitting.ModMass, 0.5))
	before := original.Stats()

	// Act
	clone := original.Clone()
	require.NoError(t, clone.Select(outfitting.HardpointRef(2), "2i"))
	require.NoError(t, clone.ApplyModification(outfitting.HardpointRef(0), outfitting.ModMass, -0.5))
	require.NoError(t, clone.ToggleEnabled(outfitting.HardpointRef(1)))

	// Assert
	assert.Equal(t, before, original.Stats())
	assert.NotSame(t, original.ComponentSet(), clone.ComponentSet())
	assert.Same(t, original.Ship(), clone.Ship())
	original.Reset()
	assert.Equal(t, "2i", clone.Hardpoints()[2].ComponentID())
	assert.Equal(t, int64(8500), clone.Stats().RetrofitTotal)
}

func TestOptions_Internal(t *testing.T) {
	// Arrange
	build := newSidewinder(t)

	// Act
	options, err := build.Options(outfitting.InternalRef(0))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, options, "0l")
	assert.Contains(t, options, "01")
	for id, record := range options {
		assert.LessOrEqual(t, record.Class, 2, id)
	}
}

func TestOptions_UnknownSlot(t *testing.T) {
	// Arrange
	build := newSidewinder(t)

	// Act
	_, err := build.Options(outfitting.InternalRef(9))

	// Assert
	var validationErr *shared.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
