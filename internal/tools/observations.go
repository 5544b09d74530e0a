// ABOUTME: Tool handlers for current observations: temperature, snow depth, precipitation, metadata.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skotervader/smhi-mcp/internal/smhi"
)

type stationInput struct {
	StationID string `json:"station_id"`
}

// GetStationTemperature returns the latest air temperature for a
// station, falling back from hourly to daily data when the hourly
// series is empty.
func (s *Service) GetStationTemperature(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in stationInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.StationID == "" {
		return Textf("Error: station_id is required"), nil
	}

	var data smhi.Observations
	url := s.client.DataURL(smhi.ParamAirTemp, in.StationID, smhi.PeriodLatestHour)
	err := s.client.FetchJSON(ctx, url, "temp-"+in.StationID+"-latest-hour", ttlLatest, &data)

	if err == nil && len(data.Value) == 0 {
		s.logger.Debug("no hourly temperature, trying daily", "station_id", in.StationID)
		url = s.client.DataURL(smhi.ParamAirTemp, in.StationID, smhi.PeriodLatestDay)
		err = s.client.FetchJSON(ctx, url, "temp-"+in.StationID+"-latest-day", ttlLatest, &data)
	}
	if err != nil {
		s.metrics.Upstream("error")
		return Textf("Error fetching temperature for station %s: %v", in.StationID, err), nil
	}
	s.metrics.Upstream("ok")

	if len(data.Value) == 0 {
		name := data.Station.Name
		if name == "" {
			name = "Unknown station"
		}
		return Textf("No temperature data available for station %s (%s)", in.StationID, name), nil
	}

	latest := data.Value[len(data.Value)-1]
	value, ok := latest.Float()
	if !ok {
		return Textf("No temperature data available for station %s (%s)", in.StationID, data.Station.Name), nil
	}
	name := data.Station.Name
	if name == "" {
		name = in.StationID
	}

	return Textf("Station %s (%s): %v°C at %s", name, in.StationID, value, latest.Timestamp()), nil
}

// GetStationSnowDepth returns the latest snow depth reading for a station.
func (s *Service) GetStationSnowDepth(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in stationInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.StationID == "" {
		return Textf("Error: station_id is required"), nil
	}

	var data smhi.Observations
	url := s.client.DataURL(smhi.ParamSnowDepth, in.StationID, smhi.PeriodLatestDay)
	if err := s.client.FetchJSON(ctx, url, "snow-"+in.StationID+"-latest", ttlCurrent, &data); err != nil {
		s.metrics.Upstream("error")
		return Textf("Error: Failed to fetch snow depth data from SMHI: %v", err), nil
	}
	s.metrics.Upstream("ok")

	if len(data.Value) == 0 {
		return Textf("Error: No snow depth data available for station %s", in.StationID), nil
	}

	latest := data.Value[len(data.Value)-1]
	value, ok := latest.Float()
	if !ok {
		return Textf("Error: No snow depth data available for station %s", in.StationID), nil
	}
	name := data.Station.Name
	if name == "" {
		name = "Unknown"
	}

	return Textf("Snow depth for station %s:\nSnow depth: %v meters\nTimestamp: %s\nStation name: %s",
		in.StationID, value, latest.Timestamp(), name), nil
}

type precipitationInput struct {
	StationID string `json:"station_id"`
	Parameter string `json:"parameter"`
	Period    string `json:"period"`
}

// GetStationPrecipitation returns the latest precipitation value at the
// requested resolution.
func (s *Service) GetStationPrecipitation(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in precipitationInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.StationID == "" {
		return Textf("Error: station_id is required"), nil
	}
	if in.Parameter == "" {
		in.Parameter = smhi.ParamDailyPrecip
	}
	if in.Period == "" {
		in.Period = smhi.PeriodLatestDay
	}

	var data smhi.Observations
	url := s.client.DataURL(in.Parameter, in.StationID, in.Period)
	cacheKey := fmt.Sprintf("precipitation-%s-%s-%s", in.StationID, in.Parameter, in.Period)
	if err := s.client.FetchJSON(ctx, url, cacheKey, ttlCurrent, &data); err != nil {
		s.metrics.Upstream("error")
		return Textf("Error fetching precipitation data for station %s: %v", in.StationID, err), nil
	}
	s.metrics.Upstream("ok")

	if len(data.Value) == 0 {
		return Textf("No precipitation data available for station %s (parameter %s, period %s)",
			in.StationID, in.Parameter, in.Period), nil
	}

	latest := data.Value[len(data.Value)-1]
	value, ok := latest.Float()
	if !ok {
		return Textf("No precipitation data available for station %s (parameter %s, period %s)",
			in.StationID, in.Parameter, in.Period), nil
	}

	return Textf("Station %s (%s): %vmm %s at %s",
		data.Station.Name, in.StationID, value,
		strings.ToLower(smhi.ParameterName(in.Parameter)), latest.Timestamp()), nil
}

type temperatureMultiInput struct {
	StationID string `json:"station_id"`
	Parameter string `json:"parameter"`
	Period    string `json:"period"`
}

// GetTemperatureMultiResolution returns the latest temperature value at
// the requested resolution (hourly, daily mean/min/max, monthly).
func (s *Service) GetTemperatureMultiResolution(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in temperatureMultiInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.StationID == "" {
		return Textf("Error: station_id is required"), nil
	}
	if in.Parameter == "" {
		in.Parameter = smhi.ParamAirTemp
	}
	if in.Period == "" {
		in.Period = smhi.PeriodLatestHour
	}

	var data smhi.Observations
	url := s.client.DataURL(in.Parameter, in.StationID, in.Period)
	cacheKey := fmt.Sprintf("temp-multi-%s-%s-%s", in.StationID, in.Parameter, in.Period)
	if err := s.client.FetchJSON(ctx, url, cacheKey, ttlCurrent, &data); err != nil {
		s.metrics.Upstream("error")
		return Textf("Error fetching temperature data for station %s: %v", in.StationID, err), nil
	}
	s.metrics.Upstream("ok")

	if len(data.Value) == 0 {
		return Textf("No temperature data available for station %s (parameter %s, period %s)",
			in.StationID, in.Parameter, in.Period), nil
	}

	latest := data.Value[len(data.Value)-1]
	value, ok := latest.Float()
	if !ok {
		return Textf("No temperature data available for station %s (parameter %s, period %s)",
			in.StationID, in.Parameter, in.Period), nil
	}

	return Textf("Station %s (%s): %v°C %s at %s",
		data.Station.Name, in.StationID, value,
		strings.ToLower(smhi.ParameterName(in.Parameter)), latest.Timestamp()), nil
}

type metadataInput struct {
	StationID string `json:"station_id"`
	Parameter string `json:"parameter"`
}

// GetStationMetadata returns station details and the periods available
// for a parameter.
func (s *Service) GetStationMetadata(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in metadataInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.StationID == "" || in.Parameter == "" {
		return Textf("Error: station_id and parameter are required"), nil
	}

	var data smhi.StationMetadata
	url := s.client.StationURL(in.Parameter, in.StationID)
	cacheKey := fmt.Sprintf("metadata-%s-%s", in.StationID, in.Parameter)
	if err := s.client.FetchJSON(ctx, url, cacheKey, ttlMetadata, &data); err != nil {
		s.metrics.Upstream("error")
		return Textf("Error fetching metadata for station %s, parameter %s: %v", in.StationID, in.Parameter, err), nil
	}
	s.metrics.Upstream("ok")

	var b strings.Builder
	fmt.Fprintf(&b, "Station Metadata\n\n")
	fmt.Fprintf(&b, "ID: %s\n", in.StationID)
	fmt.Fprintf(&b, "Name: %s\n", data.Name)
	fmt.Fprintf(&b, "Parameter: %s\n", in.Parameter)
	fmt.Fprintf(&b, "Position: %v°N, %v°E\n", data.Latitude, data.Longitude)
	fmt.Fprintf(&b, "Height: %vm\n", data.Height)
	fmt.Fprintf(&b, "Owner: %s\n\n", data.Owner)
	fmt.Fprintf(&b, "Available Periods:\n")
	for _, p := range data.Period {
		fmt.Fprintf(&b, "  • %s: %v to %v (%s)\n", p.Key, p.From, p.To, p.Summary)
	}

	return &Result{Type: "text", Text: strings.TrimRight(b.String(), "\n")}, nil
}
