// ABOUTME: Tool handlers for the curated snowmobile-condition station list and the deprecated legacy lists.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skotervader/smhi-mcp/internal/stations"
)

// ListSnowmobileConditions renders the curated station table grouped by
// region with a capability summary.
func (s *Service) ListSnowmobileConditions(ctx context.Context, input json.RawMessage) (*Result, error) {
	total := 0
	dual := 0
	snowOnly := 0
	for _, st := range stations.Snowmobile {
		total++
		if st.Temperature && st.SnowDepth {
			dual++
		}
		if !st.Temperature && st.SnowDepth {
			snowOnly++
		}
	}

	var regionBlocks []string
	for _, region := range stations.Regions {
		ids := stations.IDsByRegion(region)
		if len(ids) == 0 {
			continue
		}
		lines := make([]string, 0, len(ids))
		for _, id := range ids {
			st := stations.Snowmobile[id]
			var caps []string
			if st.Temperature {
				caps = append(caps, "Temperature")
			}
			if st.SnowDepth {
				caps = append(caps, "Snow Depth")
			}
			lines = append(lines, fmt.Sprintf("  %s: %s (%s)", id, st.Name, strings.Join(caps, " + ")))
		}
		regionBlocks = append(regionBlocks,
			fmt.Sprintf("%s (%d stations):\n%s", region, len(ids), strings.Join(lines, "\n")))
	}

	text := fmt.Sprintf("Snowmobile Conditions Monitoring Stations\n\n%s\n\n"+
		"Summary:\n"+
		"• Total stations: %d\n"+
		"• Dual capability (temp + snow): %d\n"+
		"• Temperature only: %d\n"+
		"• Snow depth only: %d\n\n"+
		"Use get_station_temperature or get_station_snow_depth with station IDs above.\n"+
		"Use search_stations_by_name_multi_param to find additional stations.",
		strings.Join(regionBlocks, "\n\n"), total, dual, total-dual-snowOnly, snowOnly)

	return &Result{Type: "text", Text: text}, nil
}

// ListTemperatureStations is the deprecated predefined temperature list.
func (s *Service) ListTemperatureStations(ctx context.Context, input json.RawMessage) (*Result, error) {
	listing, err := json.MarshalIndent(stations.LegacyTemperature, "", "  ")
	if err != nil {
		return nil, err
	}
	return Textf("DEPRECATED: Use list_snowmobile_conditions instead.\n\nAvailable temperature stations:\n%s", listing), nil
}

// ListSnowDepthStations is the deprecated predefined snow depth list.
func (s *Service) ListSnowDepthStations(ctx context.Context, input json.RawMessage) (*Result, error) {
	listing, err := json.MarshalIndent(stations.LegacySnowDepth, "", "  ")
	if err != nil {
		return nil, err
	}
	return Textf("DEPRECATED: Use list_snowmobile_conditions instead.\n\nAvailable snow depth stations:\n%s", listing), nil
}
