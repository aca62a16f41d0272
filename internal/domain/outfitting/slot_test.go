package outfitting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
)

func TestParseSlotRef(t *testing.T) {
	tests := []struct {
		input   string
		want    outfitting.SlotRef
		wantErr bool
	}{
		{input: "bulkhead", want: outfitting.BulkheadRef()},
		{input: "bulkhead:0", want: outfitting.BulkheadRef()},
		{input: "bulkhead:1", wantErr: true},
		{input: "common:frame_shift_drive", want: outfitting.CommonRef(catalog.RoleFrameShiftDrive)},
		{input: "common:power plant", want: outfitting.CommonRef(catalog.RolePowerPlant)},
		{input: "common:6", want: outfitting.CommonRef(catalog.RoleFuelTank)},
		{input: "common", wantErr: true},
		{input: "hardpoint:3", want: outfitting.HardpointRef(3)},
		{input: " internal:11 ", want: outfitting.InternalRef(11)},
		{input: "internal:-1", wantErr: true},
		{input: "internal:x", wantErr: true},
		{input: "turret:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := outfitting.ParseSlotRef(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestSlotRef_String(t *testing.T) {
	assert.Equal(t, "bulkhead", outfitting.BulkheadRef().String())
	assert.Equal(t, "common[frame shift drive]", outfitting.CommonRef(catalog.RoleFrameShiftDrive).String())
	assert.Equal(t, "hardpoint[0]", outfitting.HardpointRef(0).String())
	assert.Equal(t, "internal[7]", outfitting.InternalRef(7).String())
}

func TestSlotKind_Mandatory(t *testing.T) {
	assert.True(t, outfitting.SlotBulkhead.Mandatory())
	assert.True(t, outfitting.SlotCommon.Mandatory())
	assert.False(t, outfitting.SlotHardpoint.Mandatory())
	assert.False(t, outfitting.SlotInternal.Mandatory())
}

func TestQuantizeModification(t *testing.T) {
	assert.Equal(t, 0.1235, outfitting.QuantizeModification(0.123456))
	assert.Equal(t, -0.5, outfitting.QuantizeModification(-0.5))
	assert.Equal(t, 0.0, outfitting.QuantizeModification(0.00004))
}
