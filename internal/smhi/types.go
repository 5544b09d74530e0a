// ABOUTME: Response types for the SMHI metobs and metfcst JSON APIs.
// ABOUTME: Only the fields the gateway reads are declared.

package smhi

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ObservationValue is one data point in an observation series. The API
// is inconsistent about types: date is epoch milliseconds on some
// endpoints and an ISO string on others, and value arrives as either a
// JSON number or a numeric string. Both fields are kept loose and read
// through the Float and Timestamp helpers.
type ObservationValue struct {
	Date    any    `json:"date"`
	Value   any    `json:"value"`
	Quality string `json:"quality"`
}

// Float returns the numeric value, or false if it is missing or not a
// finite number.
func (v ObservationValue) Float() (float64, bool) {
	switch val := v.Value.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Timestamp renders the observation time as a string. Epoch millisecond
// timestamps are formatted as UTC RFC 3339; string timestamps pass through.
func (v ObservationValue) Timestamp() string {
	switch d := v.Date.(type) {
	case string:
		return d
	case float64:
		return time.UnixMilli(int64(d)).UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// StationInfo is the station block embedded in observation responses.
type StationInfo struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Owner  string  `json:"owner"`
	Height float64 `json:"height"`
}

// Observations is the data.json response for a parameter/station/period.
type Observations struct {
	Value   []ObservationValue `json:"value"`
	Station StationInfo        `json:"station"`
}

// Station is one entry in a parameter's station catalog, and the shape
// handed to the search engine and station listings.
type Station struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    float64 `json:"height"`
	Active    bool    `json:"active"`
	Owner     string  `json:"owner"`
}

// StationCatalog is the parameter.json response listing all stations
// that report a parameter.
type StationCatalog struct {
	Station []Station `json:"station"`
}

// MetadataPeriod describes one available period in station metadata.
type MetadataPeriod struct {
	Key     string `json:"key"`
	From    any    `json:"from"`
	To      any    `json:"to"`
	Summary string `json:"summary"`
}

// StationMetadata is the station.json response for a parameter/station.
type StationMetadata struct {
	ID        any              `json:"id"`
	Key       string           `json:"key"`
	Name      string           `json:"name"`
	Title     string           `json:"title"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Height    float64          `json:"height"`
	Owner     string           `json:"owner"`
	Period    []MetadataPeriod `json:"period"`
}

// MetadataLink is a download link inside period metadata.
type MetadataLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
	Type string `json:"type"`
}

// MetadataData is one data block inside period metadata, carrying the
// CSV download links for archive periods.
type MetadataData struct {
	Link []MetadataLink `json:"link"`
}

// PeriodMetadata is the period.json response for a parameter/station/period.
type PeriodMetadata struct {
	Key     string         `json:"key"`
	Title   string         `json:"title"`
	Station StationInfo    `json:"station"`
	Data    []MetadataData `json:"data"`
}

// ForecastParameter is one named value series in a forecast time step.
type ForecastParameter struct {
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`
	Values []float64 `json:"values"`
}

// ForecastEntry is one time step in a point forecast.
type ForecastEntry struct {
	ValidTime  string              `json:"validTime"`
	Parameters []ForecastParameter `json:"parameters"`
}

// Forecast is the metfcst point forecast response.
type Forecast struct {
	ApprovedTime  string          `json:"approvedTime"`
	ReferenceTime string          `json:"referenceTime"`
	TimeSeries    []ForecastEntry `json:"timeSeries"`
}
