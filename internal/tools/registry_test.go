// ABOUTME: Tests for the tool registry and dispatcher.
// ABOUTME: Validates registration order, duplicate rejection, and argument normalization.

package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmptyRegistry() *Registry {
	return NewRegistry(slog.Default())
}

func testTool(name string, h Handler) *Tool {
	return &Tool{
		Definition: Definition{
			Name:        name,
			Description: "test tool",
			InputSchema: json.RawMessage(`{"type":"object"}`),
		},
		Handler: h,
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := newEmptyRegistry()

	require.NoError(t, r.Register(testTool("a", nil)))
	err := r.Register(testTool("a", nil))
	assert.Error(t, err)
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	r := newEmptyRegistry()

	for _, name := range []string{"zebra", "alpha", "middle"} {
		require.NoError(t, r.Register(testTool(name, nil)))
	}

	defs := r.List()
	require.Len(t, defs, 3)
	assert.Equal(t, "zebra", defs[0].Name)
	assert.Equal(t, "alpha", defs[1].Name)
	assert.Equal(t, "middle", defs[2].Name)
}

func TestRegistry_Dispatch_UnknownTool(t *testing.T) {
	r := newEmptyRegistry()

	_, err := r.Dispatch(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestRegistry_Dispatch_NormalizesEmptyArgs(t *testing.T) {
	r := newEmptyRegistry()

	var got string
	handler := func(_ context.Context, input json.RawMessage) (*Result, error) {
		got = string(input)
		return Textf("ok"), nil
	}
	require.NoError(t, r.Register(testTool("echo", handler)))

	for _, args := range []json.RawMessage{nil, json.RawMessage(""), json.RawMessage("null")} {
		_, err := r.Dispatch(context.Background(), "echo", args)
		require.NoError(t, err)
		assert.Equal(t, "{}", got)
	}
}

func TestService_Registry_AllToolsRegistered(t *testing.T) {
	svc, _ := newTestService(t, http.NotFoundHandler())
	r := svc.Registry()

	expected := []string{
		"list_snowmobile_conditions",
		"list_temperature_stations",
		"list_snow_depth_stations",
		"get_station_temperature",
		"get_station_snow_depth",
		"get_weather_forecast",
		"get_station_precipitation",
		"get_temperature_multi_resolution",
		"get_station_metadata",
		"get_historical_data",
		"list_all_temperature_stations",
		"list_all_snow_depth_stations",
		"list_all_precipitation_stations",
		"search_stations_by_name",
		"search_stations_by_name_multi_param",
	}

	defs := r.List()
	require.Len(t, defs, len(expected))
	for i, name := range expected {
		assert.Equal(t, name, defs[i].Name)
		assert.True(t, r.Has(name))
		assert.NotEmpty(t, defs[i].Description, name)

		// Every schema is a valid JSON object
		var schema map[string]any
		require.NoError(t, json.Unmarshal(defs[i].InputSchema, &schema), name)
		assert.Equal(t, "object", schema["type"], name)
	}
}
