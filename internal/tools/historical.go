// ABOUTME: Tool handler for historical observation data: CSV discovery, archival, parsing, pagination.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skotervader/smhi-mcp/internal/history"
	"github.com/skotervader/smhi-mcp/internal/smhi"
	"github.com/skotervader/smhi-mcp/internal/store"
)

type historicalInput struct {
	StationID string `json:"station_id"`
	Parameter string `json:"parameter"`
	Period    string `json:"period"`
	Limit     int    `json:"limit"`
	Cursor    string `json:"cursor"`
	Reverse   *bool  `json:"reverse"`
	FromDate  string `json:"fromDate"`
	ToDate    string `json:"toDate"`
}

// GetHistoricalData serves paginated, optionally date-filtered
// historical observations. The data itself comes from the CSV download
// link advertised in the period metadata; downloaded CSVs are archived
// in the blob store with a freshness window that depends on how old the
// requested data is.
func (s *Service) GetHistoricalData(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in historicalInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.StationID == "" || in.Parameter == "" || in.Period == "" {
		return Textf("Error: station_id, parameter and period are required"), nil
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}
	reverse := true
	if in.Reverse != nil {
		reverse = *in.Reverse
	}

	fromTime, err := parseDateBound(in.FromDate, false)
	if err != nil {
		return Textf("Error: invalid fromDate %q (use ISO 8601, e.g. 2024-01-01)", in.FromDate), nil
	}
	toTime, err := parseDateBound(in.ToDate, true)
	if err != nil {
		return Textf("Error: invalid toDate %q (use ISO 8601, e.g. 2024-12-31)", in.ToDate), nil
	}

	metadata, failResult := s.fetchPeriodMetadata(ctx, in)
	if failResult != nil {
		return failResult, nil
	}

	csvLink := findCSVLink(metadata)
	if csvLink == "" {
		return Textf("Error: No CSV data available for station %s, parameter %s, period %s",
			in.StationID, in.Parameter, in.Period), nil
	}

	csvText, failResult := s.fetchCSV(ctx, in, csvLink, fromTime)
	if failResult != nil {
		return failResult, nil
	}

	points, err := history.ParseCSV(csvText)
	switch {
	case errors.Is(err, history.ErrNoData):
		return Textf("Error: No data found in CSV for station %s, parameter %s, period %s",
			in.StationID, in.Parameter, in.Period), nil
	case errors.Is(err, history.ErrNoDataSection):
		return Textf("Error: Could not find data section in CSV for station %s, parameter %s, period %s",
			in.StationID, in.Parameter, in.Period), nil
	case errors.Is(err, history.ErrNoValidRows):
		return Textf("Error: No valid data points found for station %s, parameter %s, period %s",
			in.StationID, in.Parameter, in.Period), nil
	case err != nil:
		return nil, err
	}
	originalCount := len(points)

	filtered, err := history.FilterByDate(points, fromTime, toTime)
	if errors.Is(err, history.ErrNoRowsInRange) {
		return Textf("No data found between %s and %s for station %s, parameter %s, period %s",
			orDefault(in.FromDate, "beginning"), orDefault(in.ToDate, "end"),
			in.StationID, in.Parameter, in.Period), nil
	}
	if err != nil {
		return nil, err
	}

	page := history.Paginate(len(filtered), in.Limit, in.Cursor, reverse)
	window := history.Slice(filtered, page)

	unit := smhi.ParameterUnit(in.Parameter)
	lines := make([]string, 0, len(window))
	for _, p := range window {
		lines = append(lines, fmt.Sprintf("%s: %v%s (%s)", p.Timestamp, p.Value, unit, p.Quality))
	}

	var pagination strings.Builder
	fmt.Fprintf(&pagination, "\nShowing %d of %d total values", len(window), len(filtered))
	dateFiltered := in.FromDate != "" || in.ToDate != ""
	if dateFiltered {
		fmt.Fprintf(&pagination, "\nFiltered between: %s and %s",
			orDefault(in.FromDate, "beginning"), orDefault(in.ToDate, "end"))
		fmt.Fprintf(&pagination, "\nOriginal dataset: %d values", originalCount)
	}
	if page.NextCursor != "" {
		fmt.Fprintf(&pagination, "\nNext page cursor: %s", page.NextCursor)
	}
	if page.PrevCursor != "" {
		fmt.Fprintf(&pagination, "\nPrevious page cursor: %s", page.PrevCursor)
	}

	order := "Newest first"
	if !reverse {
		order = "Oldest first"
	}

	text := fmt.Sprintf("Historical %s for station %s:\nPeriod: %s\nStation: %s\nOrder: %s\n\n%s%s",
		strings.ToLower(smhi.ParameterName(in.Parameter)), in.StationID, in.Period,
		stationNameFromMetadata(metadata), order, strings.Join(lines, "\n"), pagination.String())

	return &Result{
		Type:          "text",
		Text:          text,
		NextCursor:    page.NextCursor,
		PrevCursor:    page.PrevCursor,
		TotalCount:    len(filtered),
		OriginalCount: originalCount,
		Filtered:      dateFiltered,
	}, nil
}

// fetchPeriodMetadata loads the period metadata that carries the CSV
// download links. When the parameter/period combination is unavailable
// the station-level metadata is consulted so the error text can list
// what periods do exist.
func (s *Service) fetchPeriodMetadata(ctx context.Context, in historicalInput) (*smhi.PeriodMetadata, *Result) {
	var metadata smhi.PeriodMetadata
	url := s.client.PeriodURL(in.Parameter, in.StationID, in.Period)
	cacheKey := fmt.Sprintf("hist-meta-%s-%s-%s", in.StationID, in.Parameter, in.Period)
	if err := s.client.FetchJSON(ctx, url, cacheKey, ttlMetadata, &metadata); err == nil {
		s.metrics.Upstream("ok")
		return &metadata, nil
	}
	s.metrics.Upstream("error")

	var stationInfo smhi.StationMetadata
	stationURL := s.client.StationURL(in.Parameter, in.StationID)
	if err := s.client.FetchJSON(ctx, stationURL, "", 0, &stationInfo); err != nil {
		return nil, Textf("Error: Station %s does not support parameter %s.\n"+
			"Use search_stations_by_name_multi_param to find what parameters this station supports, or try a different parameter:\n"+
			"• 1 = hourly temperature\n"+
			"• 2 = daily mean temperature\n"+
			"• 5 = daily precipitation\n"+
			"• 8 = snow depth", in.StationID, in.Parameter)
	}

	periods := make([]string, 0, len(stationInfo.Period))
	for _, p := range stationInfo.Period {
		periods = append(periods, p.Key)
	}
	available := strings.Join(periods, ", ")
	if available == "" {
		available = "none"
	}
	title := stationInfo.Title
	if title == "" {
		title = "Unknown"
	}

	return nil, Textf("Error: No data available for station %s, parameter %s, period %s.\n"+
		"Available periods for this parameter: %s\nStation: %s",
		in.StationID, in.Parameter, in.Period, available, title)
}

// fetchCSV returns the CSV payload, preferring the blob archive over a
// fresh download. Archive failures never fail the call.
func (s *Service) fetchCSV(ctx context.Context, in historicalInput, csvLink string, fromTime time.Time) (string, *Result) {
	key := store.CSVKey(in.Parameter, in.StationID, in.Period)
	ttl := store.BlobTTL(in.Period, fromTime, s.now())

	if s.blobs != nil {
		if text, ok, err := s.blobs.GetCSV(ctx, key, ttl); err == nil && ok {
			return text, nil
		} else if err != nil {
			s.logger.Warn("blob store read failed", "key", key, "error", err)
		}
	}

	text, err := s.client.FetchCSV(ctx, csvLink)
	if err != nil {
		s.metrics.Upstream("error")
		return "", Textf("Error: Failed to fetch historical data from SMHI: %v", err)
	}
	s.metrics.Upstream("ok")

	if s.blobs != nil {
		meta := store.BlobMeta{Station: in.StationID, Parameter: in.Parameter, Period: in.Period}
		if err := s.blobs.PutCSV(ctx, key, text, meta); err != nil {
			s.logger.Warn("blob store write failed", "key", key, "error", err)
		}
	}
	return text, nil
}

// findCSVLink locates the plain-text data.csv download link in period
// metadata.
func findCSVLink(metadata *smhi.PeriodMetadata) string {
	if len(metadata.Data) == 0 {
		return ""
	}
	for _, link := range metadata.Data[0].Link {
		if link.Type == "text/plain" && strings.Contains(link.Href, "data.csv") {
			return link.Href
		}
	}
	return ""
}

// stationNameFromMetadata extracts the station name, preferring the
// embedded station block and falling back to the title, which has the
// form "Parameter - StationName: description".
func stationNameFromMetadata(metadata *smhi.PeriodMetadata) string {
	if metadata.Station.Name != "" {
		return metadata.Station.Name
	}
	if title := metadata.Title; strings.Contains(title, " - ") && strings.Contains(title, ":") {
		rest := strings.SplitN(title, " - ", 2)[1]
		return strings.TrimSpace(strings.SplitN(rest, ":", 2)[0])
	}
	return "Unknown"
}

// parseDateBound parses an ISO 8601 date or date-time. Date-only values
// snap to the start of day, or the end of day when end is set, so that
// range filters are inclusive on both sides.
func parseDateBound(s string, end bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if end {
			return t.Add(24*time.Hour - time.Second), nil
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
