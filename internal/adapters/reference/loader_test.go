package reference_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/reference"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
)

const validShips = `{
  "ships": [{
    "id": "hauler", "name": "Hauler", "hullMass": 14, "hullCost": 29790, "maxMass": 40,
    "bulkheads": [{"name": "Lightweight Alloy", "mass": 0, "cost": 0}],
    "slots": {"common": [2,2,2,1,1,1,1], "hardpoints": [1], "internal": [2]},
    "defaults": {
      "bulkhead": 0,
      "common": ["2E","2E","2E","1E","1E","1E","1C"],
      "hardpoints": [""],
      "internal": ["01"]
    }
  }]
}`

const validComponents = `{
  "version": "test",
  "components": [
    {"id": "2E", "group": "power_plant", "class": 2, "rating": "E", "name": "Power Plant", "mass": 2.5, "power": 6.4, "cost": 1980},
    {"id": "2E", "group": "thrusters", "class": 2, "rating": "E", "name": "Thrusters", "mass": 2.5, "power": 2, "cost": 1980, "maxMass": 72},
    {"id": "2E", "group": "frame_shift_drive", "class": 2, "rating": "E", "name": "Frame Shift Drive", "mass": 2.5, "power": 0.16, "cost": 1980, "optimalMass": 48, "maxFuelPerJump": 0.6},
    {"id": "1E", "group": "life_support", "class": 1, "rating": "E", "name": "Life Support", "mass": 1.3, "power": 0.32, "cost": 520},
    {"id": "1E", "group": "power_distributor", "class": 1, "rating": "E", "name": "Power Distributor", "mass": 1.3, "power": 0.32, "cost": 520},
    {"id": "1E", "group": "sensors", "class": 1, "rating": "E", "name": "Sensors", "mass": 1.3, "power": 0.16, "cost": 520},
    {"id": "1C", "group": "fuel_tank", "class": 1, "rating": "C", "name": "Fuel Tank", "mass": 0, "power": 0, "cost": 1000, "capacity": 2},
    {"id": "01", "group": "cargo_rack", "class": 2, "rating": "E", "name": "Cargo Rack", "mass": 0, "power": 0, "cost": 3250, "capacity": 4}
  ]
}`

func TestLoad_EmbeddedData(t *testing.T) {
	// Act
	cat, err := reference.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cat.Version())
	ship, err := cat.Ship("cobra_mk_iii")
	require.NoError(t, err)
	assert.Equal(t, 180.0, ship.HullMass)
	assert.Equal(t, 280.0, ship.MaxMass)
}

func TestLoadFS_MinimalCatalog(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{
		"components.json": {Data: []byte(validComponents)},
		"ships.json":      {Data: []byte(validShips)},
	}

	// Act
	cat, err := reference.LoadFS(fsys)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "test", cat.Version())
	ship, err := cat.Ship("hauler")
	require.NoError(t, err)
	require.Len(t, ship.Bulkheads, 1)
	assert.Equal(t, "00", ship.Bulkheads[0].ID)
	assert.Equal(t, catalog.GroupBulkheads, ship.Bulkheads[0].Group)
	assert.Equal(t, []string{"01"}, ship.Defaults.Internal)
}

func TestLoadFS_Failures(t *testing.T) {
	tests := []struct {
		name       string
		components string
		ships      string
		wantErr    string
	}{
		{
			name:       "missing file",
			components: validComponents,
			wantErr:    "failed to read ships.json",
		},
		{
			name:       "broken json",
			components: `{"version": `,
			ships:      validShips,
			wantErr:    "failed to parse components.json",
		},
		{
			name:       "field validation",
			components: `{"version": "x", "components": [{"id": "toolong", "group": "sensors", "class": 1, "rating": "E", "name": "Sensors"}]}`,
			ships:      validShips,
			wantErr:    "components.json validation failed",
		},
		{
			name:       "duplicate id",
			components: `{"version": "x", "components": [{"id": "2E", "group": "power_plant", "class": 2, "rating": "E", "name": "Power Plant"}, {"id": "2E", "group": "power_plant", "class": 2, "rating": "A", "name": "Power Plant"}]}`,
			ships:      validShips,
			wantErr:    "invalid reference data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			fsys := fstest.MapFS{}
			if tt.components != "" {
				fsys["components.json"] = &fstest.MapFile{Data: []byte(tt.components)}
			}
			if tt.ships != "" {
				fsys["ships.json"] = &fstest.MapFile{Data: []byte(tt.ships)}
			}

			// Act
			cat, err := reference.LoadFS(fsys)

			// Assert
			assert.Nil(t, cat)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
