// ABOUTME: Tool handlers listing full station catalogs per parameter with cursor pagination.

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skotervader/smhi-mcp/internal/history"
	"github.com/skotervader/smhi-mcp/internal/smhi"
)

// Station catalog pages are fixed at 100 entries.
const catalogPageSize = 100

type catalogInput struct {
	Parameter string `json:"parameter"`
	Cursor    string `json:"cursor"`
}

// ListAllTemperatureStations pages through the full temperature catalog.
func (s *Service) ListAllTemperatureStations(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in catalogInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return s.listStationsForParameter(ctx, smhi.ParamAirTemp, in.Cursor)
}

// ListAllSnowDepthStations pages through the full snow depth catalog.
func (s *Service) ListAllSnowDepthStations(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in catalogInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return s.listStationsForParameter(ctx, smhi.ParamSnowDepth, in.Cursor)
}

// ListAllPrecipitationStations pages through a precipitation catalog at
// the requested resolution.
func (s *Service) ListAllPrecipitationStations(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in catalogInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.Parameter == "" {
		in.Parameter = smhi.ParamDailyPrecip
	}
	return s.listStationsForParameter(ctx, in.Parameter, in.Cursor)
}

func (s *Service) listStationsForParameter(ctx context.Context, parameter, cursor string) (*Result, error) {
	catalog, err := s.fetchCatalog(ctx, parameter)
	if err != nil {
		s.metrics.Upstream("error")
		return Textf("Error: Could not fetch all stations for parameter %s: %v", parameter, err), nil
	}
	s.metrics.Upstream("ok")

	stations := catalog.Station
	page := history.Paginate(len(stations), catalogPageSize, cursor, false)
	pageItems := stations[page.Start:page.End]

	active := 0
	for _, st := range stations {
		if st.Active {
			active++
		}
	}

	listing := make(map[string]any, len(pageItems))
	for _, st := range pageItems {
		listing[st.Key] = map[string]any{
			"name":      st.Name,
			"latitude":  st.Latitude,
			"longitude": st.Longitude,
			"height":    st.Height,
			"active":    st.Active,
			"owner":     st.Owner,
		}
	}
	listingJSON, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("All SMHI stations for parameter %s (paginated):\n"+
		"Total stations: %d, Active: %d\n"+
		"Showing %d stations (offset: %d)\n\n%s",
		parameter, len(stations), active, len(pageItems), page.Start, listingJSON)
	if page.NextCursor != "" {
		text += fmt.Sprintf("\n\nTo get next page, use cursor: %s", page.NextCursor)
	}

	return &Result{Type: "text", Text: text, NextCursor: page.NextCursor}, nil
}

// fetchCatalog loads the station catalog for a parameter, cached under
// the metadata TTL since catalogs change rarely.
func (s *Service) fetchCatalog(ctx context.Context, parameter string) (*smhi.StationCatalog, error) {
	var catalog smhi.StationCatalog
	url := s.client.CatalogURL(parameter)
	if err := s.client.FetchJSON(ctx, url, "stations-"+parameter, ttlMetadata, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}
