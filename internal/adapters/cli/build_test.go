package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/commands"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
	"github.com/cmmcleod/coriolis-sub002/test/helpers"
)

func TestParseOperations_OrderAndFields(t *testing.T) {
	// Act
	ops, err := parseOperations(
		true,
		[]string{"hardpoint:0=0u", "hardpoint:6="},
		[]string{"internal:3"},
		[]string{"hardpoint:1"},
		[]string{"common:frame_shift_drive@optimal_mass=0.1"},
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []commands.BuildOperation{
		{Kind: commands.OpReset},
		{Kind: commands.OpSelect, Slot: "hardpoint:0", ComponentID: "0u"},
		{Kind: commands.OpSelect, Slot: "hardpoint:6", ComponentID: ""},
		{Kind: commands.OpToggleEnabled, Slot: "internal:3"},
		{Kind: commands.OpToggleCost, Slot: "hardpoint:1"},
		{Kind: commands.OpModify, Slot: "common:frame_shift_drive", Modification: "optimal_mass", Value: 0.1},
	}, ops)
}

func TestParseOperations_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		selects []string
		mods    []string
		wantErr string
	}{
		{name: "select without id", selects: []string{"hardpoint:0"}, wantErr: "invalid --select"},
		{name: "modify without stat", mods: []string{"hardpoint:0=0.1"}, wantErr: "invalid --modify"},
		{name: "modify without value", mods: []string{"hardpoint:0@mass"}, wantErr: "invalid --modify"},
		{name: "modify non-numeric", mods: []string{"hardpoint:0@mass=lots"}, wantErr: "invalid --modify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := parseOperations(false, tt.selects, nil, nil, tt.mods)
			assert.Nil(t, ops)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFormatCredits(t *testing.T) {
	assert.Equal(t, "0", formatCredits(0))
	assert.Equal(t, "999", formatCredits(999))
	assert.Equal(t, "22,420", formatCredits(22420))
	assert.Equal(t, "1,234,567", formatCredits(1234567))
	assert.Equal(t, "-2,200", formatCredits(-2200))
}

func TestReadCode(t *testing.T) {
	code, err := readCode(nil)
	require.NoError(t, err)
	assert.Empty(t, code)

	code, err = readCode([]string{"  1.sidewinder.abc. \n"})
	require.NoError(t, err)
	assert.Equal(t, "1.sidewinder.abc.", code)
}

func TestDisplayBuild(t *testing.T) {
	// Arrange
	build, err := outfitting.NewBuild(helpers.NewTestCatalog(t), "sidewinder")
	require.NoError(t, err)
	code := loadout.Encode(build)
	var stock bytes.Buffer
	require.NoError(t, displayBuild(&stock, build, code))

	require.NoError(t, build.Select(outfitting.HardpointRef(0), outfitting.Unassigned))
	require.NoError(t, build.ApplyModification(outfitting.HardpointRef(1), outfitting.ModMass, 0.1))
	var changed bytes.Buffer

	// Act
	err = displayBuild(&changed, build, loadout.Encode(build))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, stock.String(), build.Ship().Name)
	assert.Contains(t, stock.String(), "Code: "+code)
	assert.Contains(t, stock.String(), "22,420 components")
	assert.Contains(t, stock.String(), "Stock build")

	assert.Contains(t, changed.String(), "Retrofit: -2,200")
	assert.Contains(t, changed.String(), "hardpoint[0]")
	assert.Contains(t, changed.String(), "(empty)")
	assert.Contains(t, changed.String(), "mass +10.0%")
	assert.NotContains(t, changed.String(), "Stock build")
}
