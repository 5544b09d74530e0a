// ABOUTME: Weather tool catalog: constructs the registry with all SMHI tools and their schemas.
// ABOUTME: Holds the shared collaborators (upstream client, blob store) handlers close over.

package tools

import (
	"log/slog"
	"time"

	"github.com/skotervader/smhi-mcp/internal/metrics"
	"github.com/skotervader/smhi-mcp/internal/smhi"
	"github.com/skotervader/smhi-mcp/internal/store"
)

// Response cache windows per data class. Latest observations expire
// quickly, station metadata is practically static.
const (
	ttlLatest   = 5 * time.Minute
	ttlCurrent  = 15 * time.Minute
	ttlForecast = 30 * time.Minute
	ttlMetadata = 7 * 24 * time.Hour
)

// Service owns the collaborators the weather tools share.
type Service struct {
	client  *smhi.Client
	blobs   store.BlobStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// ServiceConfig holds construction options for Service.
type ServiceConfig struct {
	Client  *smhi.Client
	Blobs   store.BlobStore // optional; historical CSV archival is skipped without it
	Logger  *slog.Logger
	Metrics *metrics.Metrics // optional
}

// NewService creates the tool service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  cfg.Client,
		blobs:   cfg.Blobs,
		logger:  logger.With("component", "tools"),
		metrics: cfg.Metrics,
		now:     time.Now,
	}
}

// Registry builds the full tool registry. Fifteen tools are registered;
// the registry is immutable once returned.
func (s *Service) Registry() *Registry {
	r := NewRegistry(s.logger)

	register := func(name, description, schema string, h Handler) {
		if err := r.Register(&Tool{
			Definition: Definition{
				Name:        name,
				Description: description,
				InputSchema: []byte(schema),
			},
			Handler: h,
		}); err != nil {
			// Names are compile-time constants; a collision is a bug.
			panic(err)
		}
	}

	register("list_snowmobile_conditions",
		"Lists weather stations relevant for snowmobile conditions, organized by region and showing both temperature and snow depth monitoring capabilities across northern Sweden and mountain regions.",
		`{"type":"object","properties":{},"additionalProperties":false}`,
		s.ListSnowmobileConditions)

	register("list_temperature_stations",
		"[DEPRECATED] Use list_snowmobile_conditions instead. Retrieves a list of predefined temperature monitoring stations from SMHI.",
		`{"type":"object","properties":{},"additionalProperties":false}`,
		s.ListTemperatureStations)

	register("list_snow_depth_stations",
		"[DEPRECATED] Use list_snowmobile_conditions instead. Retrieves a list of predefined snow depth monitoring stations from SMHI.",
		`{"type":"object","properties":{},"additionalProperties":false}`,
		s.ListSnowDepthStations)

	register("get_station_temperature",
		"Fetches the latest temperature reading for a specific SMHI weather station.",
		`{"type":"object","properties":{"station_id":{"type":"string"}},"required":["station_id"]}`,
		s.GetStationTemperature)

	register("get_station_snow_depth",
		"Fetches the latest snow depth reading for a specific SMHI weather station.",
		`{"type":"object","properties":{"station_id":{"type":"string"}},"required":["station_id"]}`,
		s.GetStationSnowDepth)

	register("get_weather_forecast",
		"Retrieves weather forecast for the given coordinates using SMHI data with optional time filtering and limit control.",
		`{"type":"object","properties":{"lat":{"type":"number"},"lon":{"type":"number"},"fromDate":{"type":"string","description":"Start date/time for filtering (ISO 8601)"},"toDate":{"type":"string","description":"End date/time for filtering (ISO 8601)"},"limit":{"type":"number","description":"Maximum number of forecast periods to return (default: 8, max: 100)","default":8}},"required":["lat","lon"]}`,
		s.GetWeatherForecast)

	register("get_station_precipitation",
		"Fetches precipitation data with multiple resolutions (daily, hourly, 15-min, monthly).",
		`{"type":"object","properties":{"station_id":{"type":"string"},"parameter":{"type":"string","description":"Precipitation parameter: 5=daily, 7=hourly, 14=15min, 23=monthly","default":"5"},"period":{"type":"string","description":"Data period: latest-day, latest-hour, latest-months, corrected-archive","default":"latest-day"}},"required":["station_id"]}`,
		s.GetStationPrecipitation)

	register("get_temperature_multi_resolution",
		"Fetches temperature data with multiple resolutions (hourly, daily mean/min/max, monthly).",
		`{"type":"object","properties":{"station_id":{"type":"string"},"parameter":{"type":"string","description":"Temperature parameter: 1=hourly, 2=daily-mean, 19=daily-min, 20=daily-max, 22=monthly","default":"1"},"period":{"type":"string","description":"Data period: latest-hour, latest-day, latest-months, corrected-archive","default":"latest-hour"}},"required":["station_id"]}`,
		s.GetTemperatureMultiResolution)

	register("get_station_metadata",
		"Retrieves detailed metadata and available periods for a station and parameter.",
		`{"type":"object","properties":{"station_id":{"type":"string"},"parameter":{"type":"string","description":"SMHI parameter code (e.g., 1, 2, 5, 7, 8, etc.)"}},"required":["station_id","parameter"]}`,
		s.GetStationMetadata)

	register("get_historical_data",
		"Fetches historical data for any parameter and period with pagination and date filtering support.",
		`{"type":"object","properties":{"station_id":{"type":"string"},"parameter":{"type":"string","description":"SMHI parameter code"},"period":{"type":"string","description":"Data period: corrected-archive, latest-months, latest-day, latest-hour"},"limit":{"type":"number","description":"Number of values per page","default":10},"cursor":{"type":"string","description":"Pagination cursor for next/previous page"},"reverse":{"type":"boolean","description":"Show newest data first (true) or oldest first (false)","default":true},"fromDate":{"type":"string","description":"Start date for filtering (ISO 8601)"},"toDate":{"type":"string","description":"End date for filtering (ISO 8601)"}},"required":["station_id","parameter","period"]}`,
		s.GetHistoricalData)

	register("list_all_temperature_stations",
		"Retrieves all SMHI stations that provide temperature data directly from SMHI API with pagination support.",
		`{"type":"object","properties":{"cursor":{"type":"string"}}}`,
		s.ListAllTemperatureStations)

	register("list_all_snow_depth_stations",
		"Retrieves all SMHI stations that provide snow depth data directly from SMHI API with pagination support.",
		`{"type":"object","properties":{"cursor":{"type":"string"}}}`,
		s.ListAllSnowDepthStations)

	register("list_all_precipitation_stations",
		"Retrieves all SMHI stations that provide precipitation data directly from SMHI API with pagination support.",
		`{"type":"object","properties":{"parameter":{"type":"string","description":"Precipitation parameter: 5=daily, 7=hourly, 14=15min, 23=monthly","default":"5"},"cursor":{"type":"string"}}}`,
		s.ListAllPrecipitationStations)

	register("search_stations_by_name",
		"Search for weather stations by name using fuzzy matching within a specific parameter type.",
		`{"type":"object","properties":{"query":{"type":"string","description":"Station name to search for"},"parameter":{"type":"string","description":"Parameter type to filter stations: 1=temperature, 5=daily-precip, 7=hourly-precip, 8=snow-depth","default":"1"},"limit":{"type":"number","description":"Maximum number of results to return","default":10},"threshold":{"type":"number","description":"Minimum similarity score (0.0-1.0) for fuzzy matching","default":0.3},"active_only":{"type":"boolean","description":"Only include active stations","default":true}},"required":["query"]}`,
		s.SearchStationsByName)

	register("search_stations_by_name_multi_param",
		"Search for weather stations by name across all parameter types (temperature, precipitation, snow). Useful when you don't know which parameter type a station supports.",
		`{"type":"object","properties":{"query":{"type":"string","description":"Station name to search for"},"limit":{"type":"number","description":"Maximum number of results to return","default":10},"threshold":{"type":"number","description":"Minimum similarity score (0.0-1.0) for fuzzy matching","default":0.3},"active_only":{"type":"boolean","description":"Only include active stations","default":true}},"required":["query"]}`,
		s.SearchStationsByNameMultiParam)

	return r
}
