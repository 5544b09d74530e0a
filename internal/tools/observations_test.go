// ABOUTME: Tests for the current-observation tool handlers against stub upstreams.
// ABOUTME: Covers the hourly-to-daily fallback, missing data text, and upstream failures.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observationBody(name string, date int64, value string) string {
	return fmt.Sprintf(`{
		"value": [{"date": %d, "value": %q, "quality": "G"}],
		"station": {"key": "159880", "name": %q}
	}`, date, value, name)
}

func TestGetStationTemperature(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/parameter/1/station/159880/period/latest-hour/data.json",
		func(w http.ResponseWriter, _ *http.Request) {
			// 2026-01-01T00:00:00Z in epoch millis
			fmt.Fprint(w, observationBody("Arvidsjaur A", 1767225600000, "-5.2"))
		})
	svc, _ := newTestService(t, mux)

	res, err := svc.GetStationTemperature(context.Background(), json.RawMessage(`{"station_id":"159880"}`))
	require.NoError(t, err)

	assert.Equal(t, "text", res.Type)
	assert.Equal(t, "Station Arvidsjaur A (159880): -5.2°C at 2026-01-01T00:00:00Z", res.Text)
}

func TestGetStationTemperature_FallsBackToDaily(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/parameter/1/station/159880/period/latest-hour/data.json",
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"value": [], "station": {"key": "159880", "name": "Arvidsjaur A"}}`)
		})
	mux.HandleFunc("/parameter/1/station/159880/period/latest-day/data.json",
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, observationBody("Arvidsjaur A", 1767225600000, "-8.0"))
		})
	svc, _ := newTestService(t, mux)

	res, err := svc.GetStationTemperature(context.Background(), json.RawMessage(`{"station_id":"159880"}`))
	require.NoError(t, err)
	assert.Contains(t, res.Text, "-8")
}

func TestGetStationTemperature_NoData(t *testing.T) {
	mux := http.NewServeMux()
	for _, period := range []string{"latest-hour", "latest-day"} {
		mux.HandleFunc("/parameter/1/station/100/period/"+period+"/data.json",
			func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"value": [], "station": {"key": "100", "name": "Quiet"}}`)
			})
	}
	svc, _ := newTestService(t, mux)

	res, err := svc.GetStationTemperature(context.Background(), json.RawMessage(`{"station_id":"100"}`))
	require.NoError(t, err)
	assert.Equal(t, "No temperature data available for station 100 (Quiet)", res.Text)
}

func TestGetStationTemperature_UpstreamErrorBecomesText(t *testing.T) {
	// Unregistered path: the stub answers 404
	svc, _ := newTestService(t, http.NewServeMux())

	res, err := svc.GetStationTemperature(context.Background(), json.RawMessage(`{"station_id":"999"}`))
	require.NoError(t, err, "upstream failures surface as text, not handler errors")
	assert.Contains(t, res.Text, "Error fetching temperature for station 999")
	assert.Contains(t, res.Text, "404")
}

func TestGetStationTemperature_MissingStationID(t *testing.T) {
	svc, _ := newTestService(t, http.NewServeMux())

	res, err := svc.GetStationTemperature(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "Error: station_id is required", res.Text)
}

func TestGetStationSnowDepth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/parameter/8/station/159770/period/latest-day/data.json",
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, observationBody("Glommersträsk", 1767225600000, "0.45"))
		})
	svc, _ := newTestService(t, mux)

	res, err := svc.GetStationSnowDepth(context.Background(), json.RawMessage(`{"station_id":"159770"}`))
	require.NoError(t, err)

	assert.Contains(t, res.Text, "Snow depth: 0.45 meters")
	assert.Contains(t, res.Text, "Station name: Glommersträsk")
	assert.Contains(t, res.Text, "2026-01-01T00:00:00Z")
}

func TestGetStationPrecipitation_Defaults(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, observationBody("Gielas A", 1767225600000, "4.6"))
	})
	svc, _ := newTestService(t, mux)

	res, err := svc.GetStationPrecipitation(context.Background(), json.RawMessage(`{"station_id":"155790"}`))
	require.NoError(t, err)

	// Defaults: parameter 5 (daily precipitation), period latest-day
	assert.Equal(t, "/parameter/5/station/155790/period/latest-day/data.json", gotPath)
	assert.Contains(t, res.Text, "4.6mm daily precipitation")
}

func TestGetTemperatureMultiResolution_Defaults(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, observationBody("Arvidsjaur A", 1767225600000, "-5.2"))
	})
	svc, _ := newTestService(t, mux)

	_, err := svc.GetTemperatureMultiResolution(context.Background(), json.RawMessage(`{"station_id":"159880"}`))
	require.NoError(t, err)
	assert.Equal(t, "/parameter/1/station/159880/period/latest-hour/data.json", gotPath)
}

func TestGetTemperatureMultiResolution_MonthlyMean(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, observationBody("Arvidsjaur A", 1767225600000, "-12.1"))
	})
	svc, _ := newTestService(t, mux)

	res, err := svc.GetTemperatureMultiResolution(context.Background(),
		json.RawMessage(`{"station_id":"159880","parameter":"22","period":"latest-months"}`))
	require.NoError(t, err)
	assert.Equal(t, "/parameter/22/station/159880/period/latest-months/data.json", gotPath)
	assert.Contains(t, res.Text, "-12.1°C")
}

func TestGetStationMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/parameter/2/station/159770.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"key": "159770",
			"name": "Glommersträsk",
			"latitude": 65.26,
			"longitude": 19.64,
			"height": 345.0,
			"owner": "SMHI",
			"period": [
				{"key": "latest-day", "from": 1, "to": 2, "summary": "Data från senaste dygnet"},
				{"key": "corrected-archive", "from": 3, "to": 4, "summary": "Kvalitetskontrollerade historiska data"}
			]
		}`)
	})
	svc, _ := newTestService(t, mux)

	res, err := svc.GetStationMetadata(context.Background(),
		json.RawMessage(`{"station_id":"159770","parameter":"2"}`))
	require.NoError(t, err)

	assert.Contains(t, res.Text, "Name: Glommersträsk")
	assert.Contains(t, res.Text, "latest-day")
	assert.Contains(t, res.Text, "corrected-archive")
	assert.Contains(t, res.Text, "Owner: SMHI")
}

func TestGetStationMetadata_RequiresBothInputs(t *testing.T) {
	svc, _ := newTestService(t, http.NewServeMux())

	res, err := svc.GetStationMetadata(context.Background(), json.RawMessage(`{"station_id":"159770"}`))
	require.NoError(t, err)
	assert.Contains(t, res.Text, "required")
}
