// ABOUTME: Station search engine ranking catalog entries against a query.
// ABOUTME: Exact, substring, and Levenshtein-based fuzzy scoring with multi-parameter dedupe.

package search

import (
	"slices"
	"sort"
	"strings"

	"github.com/skotervader/smhi-mcp/internal/smhi"
)

// Match type labels, in rank order. An exact match always outranks a
// substring match, which always outranks a fuzzy match.
const (
	MatchExact     = "exact"
	MatchSubstring = "substring"
	MatchFuzzy     = "fuzzy"
)

// Result is one ranked station hit. Parameters lists every parameter
// catalog the station was found under.
type Result struct {
	Station    smhi.Station
	Score      float64
	MatchType  string
	Parameters []string
}

// Options tunes a search.
type Options struct {
	Threshold  float64 // minimum score to include a fuzzy hit
	Limit      int     // maximum results returned
	ActiveOnly bool    // drop inactive stations
}

// Score rates how well a normalized station name matches a normalized
// query. The result is (score, match type); a score of 0 means no match
// at or above the threshold.
func Score(normalizedQuery, normalizedName string, threshold float64) (float64, string) {
	if normalizedName == normalizedQuery {
		return 1.0, MatchExact
	}
	if normalizedQuery != "" && strings.Contains(normalizedName, normalizedQuery) {
		lenDiff := len(normalizedName) - len(normalizedQuery)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		return 0.9 - (float64(lenDiff)/float64(len(normalizedName)))*0.1, MatchSubstring
	}
	if sim := Similarity(normalizedQuery, normalizedName); sim >= threshold {
		return sim, MatchFuzzy
	}
	return 0, ""
}

// Rank scores every station in the catalogs against query and returns
// the ranked, deduplicated results. Catalogs map a parameter code to its
// station list; when a station appears under several parameters the
// highest score wins and the parameter list is the union. Ordering is
// score descending with ties broken by name ascending, truncated to
// opts.Limit.
func Rank(query string, catalogs map[string][]smhi.Station, opts Options) []Result {
	normalizedQuery := Normalize(query)

	byID := make(map[string]*Result)

	for parameter, stations := range catalogs {
		for _, station := range stations {
			if opts.ActiveOnly && !station.Active {
				continue
			}

			score, matchType := Score(normalizedQuery, Normalize(station.Name), opts.Threshold)
			if matchType == "" || score < opts.Threshold {
				continue
			}

			if existing, ok := byID[station.Key]; ok {
				if score > existing.Score {
					existing.Score = score
					existing.MatchType = matchType
					existing.Station = station
				}
				if !slices.Contains(existing.Parameters, parameter) {
					existing.Parameters = append(existing.Parameters, parameter)
				}
				continue
			}

			byID[station.Key] = &Result{
				Station:    station,
				Score:      score,
				MatchType:  matchType,
				Parameters: []string{parameter},
			}
		}
	}

	results := make([]Result, 0, len(byID))
	for _, r := range byID {
		sort.Strings(r.Parameters)
		results = append(results, *r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Station.Name < results[j].Station.Name
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}
