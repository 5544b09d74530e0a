// ABOUTME: Tool handler for point weather forecasts from the metfcst API.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skotervader/smhi-mcp/internal/smhi"
)

const (
	forecastDefaultLimit = 8
	forecastMaxLimit     = 100
)

type forecastInput struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
	FromDate  string   `json:"fromDate"`
	ToDate    string   `json:"toDate"`
	Limit     int      `json:"limit"`
}

// The forecast parameters surfaced per time step. Wsymb2 is additionally
// translated to its human-readable description.
var forecastParams = []string{"t", "pmean", "ws", "wd", "tcc_mean", "vis", "r", "Wsymb2"}

// GetWeatherForecast fetches the point forecast for a coordinate and
// renders up to limit time steps, optionally filtered to a date range.
func (s *Service) GetWeatherForecast(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in forecastInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.Latitude == nil || in.Longitude == nil {
		return Textf("Error: lat and lon are required"), nil
	}
	lat, lon := *in.Latitude, *in.Longitude

	from, err := parseDateBound(in.FromDate, false)
	if err != nil {
		return Textf("Error: invalid fromDate: %v", err), nil
	}
	to, err := parseDateBound(in.ToDate, true)
	if err != nil {
		return Textf("Error: invalid toDate: %v", err), nil
	}

	limit := in.Limit
	if limit <= 0 {
		limit = forecastDefaultLimit
	}
	if limit > forecastMaxLimit {
		limit = forecastMaxLimit
	}

	var forecast smhi.Forecast
	url := s.client.ForecastURL(lat, lon)
	cacheKey := fmt.Sprintf("forecast-%v-%v", lat, lon)
	if err := s.client.FetchJSON(ctx, url, cacheKey, ttlForecast, &forecast); err != nil {
		s.metrics.Upstream("error")
		return Textf("Error fetching forecast for %.4f, %.4f: %v", lat, lon, err), nil
	}
	s.metrics.Upstream("ok")

	total := len(forecast.TimeSeries)
	filtered := filterForecast(forecast.TimeSeries, from, to)
	if len(filtered) == 0 {
		if !from.IsZero() || !to.IsZero() {
			return Textf("No forecast data between %s and %s for %.4f, %.4f",
				orDefault(in.FromDate, "start"), orDefault(in.ToDate, "end"), lat, lon), nil
		}
		return Textf("No forecast data available for %.4f, %.4f", lat, lon), nil
	}

	shown := filtered
	if len(shown) > limit {
		shown = shown[:limit]
	}

	entries := make([]map[string]any, 0, len(shown))
	for _, ts := range shown {
		entries = append(entries, forecastEntry(ts))
	}

	payload := map[string]any{
		"location":      map[string]float64{"lat": lat, "lon": lon},
		"approvedTime":  forecast.ApprovedTime,
		"referenceTime": forecast.ReferenceTime,
		"forecast":      entries,
	}
	payloadJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Weather forecast for %.4f, %.4f:\n"+
		"Showing %d of %d time steps (total available: %d)\n\n%s",
		lat, lon, len(shown), len(filtered), total, payloadJSON)
	r := Textf("%s", text)
	r.TotalCount = total
	if len(filtered) != total {
		r.OriginalCount = total
		r.Filtered = true
	}
	return r, nil
}

func filterForecast(series []smhi.ForecastEntry, from, to time.Time) []smhi.ForecastEntry {
	if from.IsZero() && to.IsZero() {
		return series
	}
	var out []smhi.ForecastEntry
	for _, ts := range series {
		t, err := time.Parse(time.RFC3339, ts.ValidTime)
		if err != nil {
			continue
		}
		if !from.IsZero() && t.Before(from) {
			continue
		}
		if !to.IsZero() && t.After(to) {
			continue
		}
		out = append(out, ts)
	}
	return out
}

// forecastEntry flattens one time step to the surface parameters, adding
// a weather description alongside the raw symbol code.
func forecastEntry(ts smhi.ForecastEntry) map[string]any {
	byName := make(map[string]smhi.ForecastParameter, len(ts.Parameters))
	for _, p := range ts.Parameters {
		byName[p.Name] = p
	}

	entry := map[string]any{"validTime": ts.ValidTime}
	for _, name := range forecastParams {
		p, ok := byName[name]
		if !ok || len(p.Values) == 0 {
			continue
		}
		entry[name] = map[string]any{"value": p.Values[0], "unit": p.Unit}
		if name == "Wsymb2" {
			entry["weather"] = smhi.WeatherDescription(int(p.Values[0]))
		}
	}
	return entry
}
