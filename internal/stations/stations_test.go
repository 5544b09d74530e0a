// ABOUTME: Tests for the embedded curated station catalog.
// ABOUTME: Sanity-checks the loaded tables and region groupings.

package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowmobile_Loaded(t *testing.T) {
	require.NotEmpty(t, Snowmobile)

	// Spot-check a known entry
	glommerstrask, ok := Snowmobile["159770"]
	require.True(t, ok)
	assert.Equal(t, "Glommersträsk", glommerstrask.Name)
	assert.Equal(t, "Northern Sweden", glommerstrask.Region)
	assert.True(t, glommerstrask.Temperature)
	assert.True(t, glommerstrask.SnowDepth)
}

func TestSnowmobile_EveryStationHasKnownRegion(t *testing.T) {
	known := make(map[string]bool, len(Regions))
	for _, r := range Regions {
		known[r] = true
	}

	for id, s := range Snowmobile {
		assert.True(t, known[s.Region], "station %s has unknown region %q", id, s.Region)
		assert.NotEmpty(t, s.Name, "station %s has no name", id)
		assert.True(t, s.Temperature || s.SnowDepth,
			"station %s monitors neither temperature nor snow depth", id)
	}
}

func TestLegacyMaps_Loaded(t *testing.T) {
	require.NotEmpty(t, LegacyTemperature)
	require.NotEmpty(t, LegacySnowDepth)

	assert.Equal(t, "Glommersträsk", LegacyTemperature["159770"])
	assert.Contains(t, LegacySnowDepth, "159770")
}

func TestIDsByRegion(t *testing.T) {
	for _, region := range Regions {
		ids := IDsByRegion(region)
		assert.NotEmpty(t, ids, "region %q has no stations", region)

		// Sorted ascending
		for i := 1; i < len(ids); i++ {
			assert.LessOrEqual(t, ids[i-1], ids[i])
		}
	}

	assert.Empty(t, IDsByRegion("Atlantis"))
}
