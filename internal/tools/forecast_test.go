// ABOUTME: Tests for the point forecast handler against a stub metfcst upstream.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forecastMux serves a point forecast with one entry per hour starting
// 2026-01-01T00:00Z.
func forecastMux(hours int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/geotype/point/", func(w http.ResponseWriter, _ *http.Request) {
		entries := make([]string, 0, hours)
		for i := 0; i < hours; i++ {
			entries = append(entries, fmt.Sprintf(`{
				"validTime": "2026-01-01T%02d:00:00Z",
				"parameters": [
					{"name": "t", "unit": "Cel", "values": [%d.5]},
					{"name": "ws", "unit": "m/s", "values": [3.0]},
					{"name": "Wsymb2", "unit": "category", "values": [1]}
				]
			}`, i, i))
		}
		fmt.Fprintf(w, `{
			"approvedTime": "2026-01-01T00:00:00Z",
			"referenceTime": "2026-01-01T00:00:00Z",
			"timeSeries": [%s]
		}`, strings.Join(entries, ","))
	})
	return mux
}

func TestGetWeatherForecast(t *testing.T) {
	svc, _ := newTestService(t, forecastMux(12))

	res, err := svc.GetWeatherForecast(context.Background(),
		json.RawMessage(`{"lat": 65.59, "lon": 19.17}`))
	require.NoError(t, err)

	assert.Contains(t, res.Text, "Weather forecast for 65.5900, 19.1700")

	// Default limit is 8 time steps
	assert.Contains(t, res.Text, "Showing 8 of 12 time steps")
	assert.Contains(t, res.Text, `"validTime": "2026-01-01T07:00:00Z"`)
	assert.NotContains(t, res.Text, `"validTime": "2026-01-01T08:00:00Z"`)

	// Symbol codes are translated
	assert.Contains(t, res.Text, "Clear sky")
	assert.Equal(t, 12, res.TotalCount)
}

func TestGetWeatherForecast_RequiresCoordinates(t *testing.T) {
	svc, _ := newTestService(t, forecastMux(1))

	res, err := svc.GetWeatherForecast(context.Background(), json.RawMessage(`{"lat": 65.59}`))
	require.NoError(t, err)
	assert.Equal(t, "Error: lat and lon are required", res.Text)
}

func TestGetWeatherForecast_DateFilter(t *testing.T) {
	svc, _ := newTestService(t, forecastMux(12))

	res, err := svc.GetWeatherForecast(context.Background(),
		json.RawMessage(`{"lat": 65.59, "lon": 19.17, "fromDate": "2026-01-01T03:00:00Z", "toDate": "2026-01-01T05:00:00Z", "limit": 100}`))
	require.NoError(t, err)

	assert.Contains(t, res.Text, "Showing 3 of 3 time steps (total available: 12)")
	assert.Contains(t, res.Text, `"validTime": "2026-01-01T03:00:00Z"`)
	assert.NotContains(t, res.Text, `"validTime": "2026-01-01T06:00:00Z"`)
	assert.True(t, res.Filtered)
}

func TestGetWeatherForecast_FilterMatchesNothing(t *testing.T) {
	svc, _ := newTestService(t, forecastMux(4))

	res, err := svc.GetWeatherForecast(context.Background(),
		json.RawMessage(`{"lat": 65.59, "lon": 19.17, "fromDate": "2027-01-01", "toDate": "2027-01-02"}`))
	require.NoError(t, err)
	assert.Contains(t, res.Text, "No forecast data between 2027-01-01 and 2027-01-02")
}

func TestGetWeatherForecast_LimitCap(t *testing.T) {
	svc, _ := newTestService(t, forecastMux(150))

	res, err := svc.GetWeatherForecast(context.Background(),
		json.RawMessage(`{"lat": 65.59, "lon": 19.17, "limit": 500}`))
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Showing 100 of 150 time steps")
}

func TestGetWeatherForecast_UpstreamError(t *testing.T) {
	svc, _ := newTestService(t, http.NewServeMux())

	res, err := svc.GetWeatherForecast(context.Background(),
		json.RawMessage(`{"lat": 65.59, "lon": 19.17}`))
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Error fetching forecast")
}
