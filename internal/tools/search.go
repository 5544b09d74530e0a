// ABOUTME: Tool handlers for fuzzy station search over one or several parameter catalogs.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skotervader/smhi-mcp/internal/search"
	"github.com/skotervader/smhi-mcp/internal/smhi"
)

type searchInput struct {
	Query      string   `json:"query"`
	Parameter  string   `json:"parameter"`
	Parameters []string `json:"parameters"`
	Limit      int      `json:"limit"`
	Threshold  *float64 `json:"threshold"`
	ActiveOnly *bool    `json:"active_only"`
}

func (in *searchInput) options() search.Options {
	opts := search.Options{Threshold: 0.3, Limit: 10, ActiveOnly: true}
	if in.Limit > 0 {
		opts.Limit = in.Limit
	}
	if in.Threshold != nil {
		opts.Threshold = *in.Threshold
	}
	if in.ActiveOnly != nil {
		opts.ActiveOnly = *in.ActiveOnly
	}
	return opts
}

// SearchStationsByName fuzzy-searches one parameter's station catalog.
func (s *Service) SearchStationsByName(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in searchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(in.Query) == "" {
		return Textf("Error: query is required"), nil
	}
	if in.Parameter == "" {
		in.Parameter = smhi.ParamAirTemp
	}

	catalog, err := s.fetchCatalog(ctx, in.Parameter)
	if err != nil {
		s.metrics.Upstream("error")
		return Textf("Error searching stations for %q: %v", in.Query, err), nil
	}
	s.metrics.Upstream("ok")

	results := search.Rank(in.Query, map[string][]smhi.Station{in.Parameter: catalog.Station}, in.options())
	if len(results) == 0 {
		return Textf("No stations found matching %q for parameter %s.\n"+
			"Try a different spelling, a lower threshold, or active_only=false.",
			in.Query, in.Parameter), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Station search results for %q (parameter %s, %s):\n\n",
		in.Query, in.Parameter, smhi.ParameterName(in.Parameter))
	writeSearchResults(&b, results)
	return Textf("%s", b.String()), nil
}

// SearchStationsByNameMultiParam fuzzy-searches several catalogs at once
// and merges the hits per station. A catalog that fails to load is
// skipped so one bad parameter does not sink the whole search.
func (s *Service) SearchStationsByNameMultiParam(ctx context.Context, input json.RawMessage) (*Result, error) {
	var in searchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(in.Query) == "" {
		return Textf("Error: query is required"), nil
	}
	params := in.Parameters
	if len(params) == 0 {
		params = []string{
			smhi.ParamAirTemp,
			smhi.ParamDailyPrecip,
			smhi.ParamHourlyPrecip,
			smhi.ParamSnowDepth,
		}
	}

	catalogs := make(map[string][]smhi.Station, len(params))
	var failed []string
	for _, p := range params {
		catalog, err := s.fetchCatalog(ctx, p)
		if err != nil {
			s.metrics.Upstream("error")
			s.logger.Warn("catalog fetch failed during search", "parameter", p, "error", err)
			failed = append(failed, p)
			continue
		}
		s.metrics.Upstream("ok")
		catalogs[p] = catalog.Station
	}
	if len(catalogs) == 0 {
		return Textf("Error searching stations for %q: no parameter catalog could be fetched (tried %s)",
			in.Query, strings.Join(params, ", ")), nil
	}

	results := search.Rank(in.Query, catalogs, in.options())
	if len(results) == 0 {
		text := fmt.Sprintf("No stations found matching %q across parameters %s.",
			in.Query, strings.Join(params, ", "))
		if len(failed) > 0 {
			text += fmt.Sprintf("\nNote: could not fetch catalogs for: %s", strings.Join(failed, ", "))
		}
		return Textf("%s", text), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Multi-parameter station search results for %q (parameters %s):\n\n",
		in.Query, strings.Join(params, ", "))
	writeSearchResults(&b, results)
	if len(failed) > 0 {
		fmt.Fprintf(&b, "\nNote: could not fetch catalogs for: %s\n", strings.Join(failed, ", "))
	}
	return Textf("%s", b.String()), nil
}

func writeSearchResults(b *strings.Builder, results []search.Result) {
	for i, r := range results {
		st := r.Station
		status := "inactive"
		if st.Active {
			status = "active"
		}
		fmt.Fprintf(b, "%d. %s (station %s)\n", i+1, st.Name, st.Key)
		fmt.Fprintf(b, "   Match: %s (score %.2f)\n", r.MatchType, r.Score)
		fmt.Fprintf(b, "   Location: %.4f, %.4f (height %.1f m)\n", st.Latitude, st.Longitude, st.Height)
		fmt.Fprintf(b, "   Status: %s, Owner: %s\n", status, st.Owner)
		if len(r.Parameters) > 0 {
			names := make([]string, len(r.Parameters))
			for j, p := range r.Parameters {
				names[j] = fmt.Sprintf("%s (%s)", p, smhi.ParameterName(p))
			}
			fmt.Fprintf(b, "   Parameters: %s\n", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
}
