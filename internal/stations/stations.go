// ABOUTME: Curated station tables for snowmobile-condition monitoring.
// ABOUTME: Loaded once from embedded TOML; treat the exported maps as read-only.

package stations

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed stations.toml
var stationsTOML []byte

// Station is one curated monitoring station.
type Station struct {
	Name        string `toml:"name"`
	Temperature bool   `toml:"temperature"`
	SnowDepth   bool   `toml:"snow_depth"`
	Region      string `toml:"region"`
}

type catalog struct {
	Stations map[string]Station `toml:"stations"`
	Legacy   struct {
		Temperature map[string]string `toml:"temperature"`
		SnowDepth   map[string]string `toml:"snow_depth"`
	} `toml:"legacy"`
}

// Configuration data, populated from the embedded catalog at package
// init and never mutated afterwards.
var (
	// Snowmobile maps station ID to its curated entry.
	Snowmobile map[string]Station

	// LegacyTemperature and LegacySnowDepth back the deprecated list
	// tools, mapping station ID to display name.
	LegacyTemperature map[string]string
	LegacySnowDepth   map[string]string
)

// Regions is the display order for region groupings.
var Regions = []string{"Arctic/Mountain", "Mountain", "Northern Sweden", "Coastal"}

func init() {
	var c catalog
	if err := toml.Unmarshal(stationsTOML, &c); err != nil {
		panic(fmt.Sprintf("stations: invalid embedded catalog: %v", err))
	}
	Snowmobile = c.Stations
	LegacyTemperature = c.Legacy.Temperature
	LegacySnowDepth = c.Legacy.SnowDepth
}

// IDsByRegion returns the curated station IDs for a region, sorted by ID.
func IDsByRegion(region string) []string {
	var ids []string
	for id, s := range Snowmobile {
		if s.Region == region {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
