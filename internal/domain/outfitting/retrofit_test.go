package outfitting_test

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/test/helpers"
)

func newAnaconda(t *testing.T) *outfitting.Build {
	t.Helper()
	build, err := outfitting.NewBuild(helpers.NewTestCatalog(t), "anaconda")
	require.NoError(t, err)
	return build
}

func TestRetrofit_AnacondaBulkhead(t *testing.T) {
	// Arrange
	build := newAnaconda(t)
	require.Zero(t, build.Stats().RetrofitTotal)

	// Act
	require.NoError(t, build.SelectBulkhead(1))

	// Assert
	stats := build.Stats()
	assert.Equal(t, int64(58787780), stats.RetrofitTotal)
	require.Len(t, stats.RetrofitChanges, 1)
	assert.Equal(t, outfitting.BulkheadRef(), stats.RetrofitChanges[0].Slot)
	assert.Equal(t, "00", stats.RetrofitChanges[0].FromID)
	assert.Equal(t, "01", stats.RetrofitChanges[0].ToID)

	// Act - reselect the stock bulkhead
	require.NoError(t, build.SelectBulkhead(0))

	// Assert
	stats = build.Stats()
	assert.Equal(t, int64(0), stats.RetrofitTotal)
	assert.Empty(t, stats.RetrofitChanges)
}

func TestRetrofit_AnacondaHardpointsAndInternal(t *testing.T) {
	// Arrange
	build := newAnaconda(t)

	// Act
	require.NoError(t, build.Select(outfitting.HardpointRef(0), "0u"))

	// Assert
	stats := build.Stats()
	assert.Equal(t, int64(1177600), stats.RetrofitTotal)
	assert.Len(t, stats.RetrofitChanges, 1)

	// Act - empty the two stock pulse lasers
	require.NoError(t, build.Select(outfitting.HardpointRef(6), outfitting.Unassigned))
	require.NoError(t, build.Select(outfitting.HardpointRef(7), outfitting.Unassigned))

	// Assert
	stats = build.Stats()
	assert.Equal(t, int64(1173200), stats.RetrofitTotal)
	assert.Len(t, stats.RetrofitChanges, 3)

	// Act - fit a shield cell bank
	require.NoError(t, build.Select(outfitting.InternalRef(3), "11"))

	// Assert
	stats = build.Stats()
	assert.Equal(t, int64(16478701), stats.RetrofitTotal)
	require.Len(t, stats.RetrofitChanges, 4)

	var slots []outfitting.SlotRef
	for _, change := range stats.RetrofitChanges {
		slots = append(slots, change.Slot)
	}
	assert.Equal(t, []outfitting.SlotRef{
		outfitting.HardpointRef(0),
		outfitting.HardpointRef(6),
		outfitting.HardpointRef(7),
		outfitting.InternalRef(3),
	}, slots, "changes are listed in canonical slot order")
}

func TestRetrofit_IgnoresCostToggleAndModifications(t *testing.T) {
	// Arrange
	build := newAnaconda(t)
	require.NoError(t, build.Select(outfitting.HardpointRef(0), "0u"))

	// Act
	require.NoError(t, build.ToggleCost(outfitting.HardpointRef(0)))
	require.NoError(t, build.ApplyModification(outfitting.HardpointRef(0), outfitting.ModMass, -0.2))

	// Assert
	assert.Equal(t, int64(1177600), build.Stats().RetrofitTotal)
}

func sortedIDs(t *testing.T, build *outfitting.Build, ref outfitting.SlotRef) []string {
	t.Helper()
	options, err := build.Options(ref)
	require.NoError(t, err)
	ids := make([]string, 0, len(options))
	for id := range options {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func TestRetrofit_RevertingEverySlotRestoresZero(t *testing.T) {
	cat := helpers.NewTestCatalog(t)
	rng := rand.New(rand.NewPCG(7, 1337))

	for _, shipID := range []string{"anaconda", "cobra_mk_iii", "sidewinder"} {
		t.Run(shipID, func(t *testing.T) {
			for round := 0; round < 25; round++ {
				// Arrange
				build, err := outfitting.NewBuild(cat, shipID)
				require.NoError(t, err)
				stock := make([]string, 0)
				for _, slot := range build.Slots() {
					stock = append(stock, slot.ComponentID())
				}
				slots := build.Slots()

				// Act - a random sequence of legal selections
				steps := 1 + rng.IntN(20)
				for step := 0; step < steps; step++ {
					slot := slots[rng.IntN(len(slots))]
					ids := sortedIDs(t, build, slot.Ref())
					if !slot.Kind().Mandatory() {
						ids = append(ids, outfitting.Unassigned)
					}
					require.NoError(t, build.Select(slot.Ref(), ids[rng.IntN(len(ids))]))
				}

				// Act - revert every slot to stock
				for i, slot := range build.Slots() {
					require.NoError(t, build.Select(slot.Ref(), stock[i]))
				}

				// Assert
				stats := build.Stats()
				assert.Equal(t, int64(0), stats.RetrofitTotal, "round %d", round)
				assert.Empty(t, stats.RetrofitChanges, "round %d", round)
			}
		})
	}
}
