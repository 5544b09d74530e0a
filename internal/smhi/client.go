// ABOUTME: HTTP client for the SMHI open-data APIs with pluggable response caching.
// ABOUTME: Builds metobs/metfcst URLs and surfaces non-2xx responses as UpstreamError.

package smhi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Default API base URLs for the SMHI open-data services.
const (
	DefaultMetobsBaseURL  = "https://opendata-download-metobs.smhi.se/api/version/1.0"
	DefaultMetfcstBaseURL = "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2"
)

// The SMHI portal rejects requests without browser-looking headers, so
// every request masquerades as one and names the open-data portal as
// referer.
const (
	refererHeader   = "https://opendata.smhi.se/"
	userAgentHeader = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko)"
)

// UpstreamError reports a non-2xx response from SMHI.
type UpstreamError struct {
	Status     int
	StatusText string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("SMHI API request failed: %d %s", e.Status, e.StatusText)
}

// ResponseCache is the get/put-with-TTL capability the client consults
// before going to the network. Implementations own freshness tracking.
type ResponseCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte, ttl time.Duration)
}

// ClientConfig holds construction options for Client.
type ClientConfig struct {
	MetobsBaseURL  string
	MetfcstBaseURL string
	Cache          ResponseCache // optional
	HTTPClient     *http.Client  // optional
	Logger         *slog.Logger  // optional
}

// Client fetches JSON and CSV payloads from the SMHI open-data APIs.
// A single failed fetch is surfaced immediately; there are no retries.
type Client struct {
	httpClient  *http.Client
	cache       ResponseCache
	logger      *slog.Logger
	metobsBase  string
	metfcstBase string
}

// NewClient creates a Client with defaults filled in for any unset option.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metobsBase := cfg.MetobsBaseURL
	if metobsBase == "" {
		metobsBase = DefaultMetobsBaseURL
	}
	metfcstBase := cfg.MetfcstBaseURL
	if metfcstBase == "" {
		metfcstBase = DefaultMetfcstBaseURL
	}

	return &Client{
		httpClient:  httpClient,
		cache:       cfg.Cache,
		logger:      logger.With("component", "smhi"),
		metobsBase:  metobsBase,
		metfcstBase: metfcstBase,
	}
}

// DataURL returns the observation data endpoint for a parameter, station,
// and period.
func (c *Client) DataURL(parameter, stationID, period string) string {
	return fmt.Sprintf("%s/parameter/%s/station/%s/period/%s/data.json", c.metobsBase, parameter, stationID, period)
}

// StationURL returns the station metadata endpoint for a parameter.
func (c *Client) StationURL(parameter, stationID string) string {
	return fmt.Sprintf("%s/parameter/%s/station/%s.json", c.metobsBase, parameter, stationID)
}

// PeriodURL returns the period metadata endpoint, which carries the CSV
// download links for archive data.
func (c *Client) PeriodURL(parameter, stationID, period string) string {
	return fmt.Sprintf("%s/parameter/%s/station/%s/period/%s.json", c.metobsBase, parameter, stationID, period)
}

// CatalogURL returns the endpoint listing all stations for a parameter.
func (c *Client) CatalogURL(parameter string) string {
	return fmt.Sprintf("%s/parameter/%s.json", c.metobsBase, parameter)
}

// ForecastURL returns the point forecast endpoint for a coordinate.
func (c *Client) ForecastURL(lat, lon float64) string {
	return fmt.Sprintf("%s/geotype/point/lon/%s/lat/%s/data.json",
		c.metfcstBase,
		strconv.FormatFloat(lon, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64))
}

// FetchJSON retrieves url and decodes the JSON body into out. When
// cacheKey and ttl are set, the cache is consulted first and populated
// on success; cache failures never fail the fetch.
func (c *Client) FetchJSON(ctx context.Context, url, cacheKey string, ttl time.Duration, out any) error {
	useCache := c.cache != nil && cacheKey != "" && ttl > 0

	if useCache {
		if data, ok := c.cache.Get(cacheKey); ok {
			if err := json.Unmarshal(data, out); err == nil {
				c.logger.Debug("cache hit", "key", cacheKey)
				return nil
			}
			// Undecodable cache entries are treated as misses.
		}
	}

	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding SMHI response: %w", err)
	}

	if useCache {
		c.cache.Put(cacheKey, body, ttl)
	}
	return nil
}

// FetchCSV retrieves url and returns the raw body text.
func (c *Client) FetchCSV(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url, "text/csv")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Referer", refererHeader)
	req.Header.Set("User-Agent", userAgentHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
