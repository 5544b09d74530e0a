// ABOUTME: Parser for SMHI historical-data CSV downloads.
// ABOUTME: Locates the data section among metadata preamble and extracts typed observation rows.

package history

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Expected data-availability conditions. Callers render these as
// explanatory text for the client rather than protocol errors.
var (
	ErrNoData        = errors.New("no data found in CSV")
	ErrNoDataSection = errors.New("could not find data section in CSV")
	ErrNoValidRows   = errors.New("no valid data points found")
	ErrNoRowsInRange = errors.New("no data in requested date range")
)

// Point is one parsed observation row, in file order.
type Point struct {
	Timestamp string  // date or "date time", as present in the file
	Value     float64
	Quality   string
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ParseCSV extracts observation points from a raw SMHI CSV download.
//
// SMHI CSV files open with a free-form metadata preamble (station
// positions, parameter descriptions) before the measurement table. Two
// header dialects mark the table start: the latest periods use a
// "Datum;Tid (UTC);...;Kvalitet" header, the corrected archive uses a
// from/to/representative-date header. When neither is recognized the
// parser falls back to the first line whose leading field parses as a
// date. Rows without a finite numeric value or a well-formed date are
// dropped silently.
func ParseCSV(text string) ([]Point, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, ErrNoData
	}

	start, layout := findDataSection(lines)
	if start < 0 {
		return nil, ErrNoDataSection
	}

	points := make([]Point, 0, len(lines)-start)
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if p, ok := parseRow(line, layout); ok {
			points = append(points, p)
		}
	}

	if len(points) == 0 {
		return nil, ErrNoValidRows
	}
	return points, nil
}

// rowLayout selects which columns hold the timestamp and value.
type rowLayout int

const (
	// layoutLatest is Datum;Tid (UTC);Value;Quality.
	layoutLatest rowLayout = iota
	// layoutArchive is FromDate;ToDate;RepresentativeDate;Value;Quality.
	layoutArchive
)

// findDataSection returns the index of the first data row and the column
// layout, or -1 when no section is recognized.
func findDataSection(lines []string) (int, rowLayout) {
	for i, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "Datum;Tid (UTC)"),
			strings.Contains(line, "Datum;Tid") && strings.Contains(line, "Kvalitet"):
			return i + 1, layoutLatest
		case strings.Contains(line, "Representativt dygn") && strings.Contains(line, "Kvalitet"),
			strings.Contains(line, "Från Datum") && strings.Contains(line, "Kvalitet"):
			return i + 1, layoutArchive
		}
	}

	// No header recognized: scan for the first row whose leading field is
	// a date and that carries at least a value column.
	for i, line := range lines {
		parts := strings.Split(strings.TrimSpace(line), ";")
		if len(parts) >= 3 && datePattern.MatchString(parts[0]) {
			if len(parts) >= 5 && datePattern.MatchString(parts[1]) && datePattern.MatchString(parts[2]) {
				return i, layoutArchive
			}
			return i, layoutLatest
		}
	}

	return -1, layoutLatest
}

func parseRow(line string, layout rowLayout) (Point, bool) {
	parts := strings.Split(line, ";")

	var date, timeOfDay, rawValue, quality string
	switch layout {
	case layoutArchive:
		if len(parts) < 4 {
			return Point{}, false
		}
		// The representative date is the third column; fall back to the
		// from-date when it is absent.
		date = strings.TrimSpace(parts[2])
		if date == "" {
			date = strings.TrimSpace(parts[0])
		}
		rawValue = strings.TrimSpace(parts[3])
		if len(parts) > 4 {
			quality = strings.TrimSpace(parts[4])
		}
	default:
		if len(parts) < 3 {
			return Point{}, false
		}
		date = strings.TrimSpace(parts[0])
		timeOfDay = strings.TrimSpace(parts[1])
		rawValue = strings.TrimSpace(parts[2])
		if len(parts) > 3 {
			quality = strings.TrimSpace(parts[3])
		}
	}

	if !datePattern.MatchString(date) {
		return Point{}, false
	}
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return Point{}, false
	}

	timestamp := date
	if timeOfDay != "" {
		timestamp = date + " " + timeOfDay
	}
	if quality == "" {
		quality = "Unknown"
	}

	return Point{Timestamp: timestamp, Value: value, Quality: quality}, true
}

// FilterByDate keeps points whose timestamp falls inside the inclusive
// [from, to] range. Either bound may be zero to leave that side open.
// An empty result is reported as ErrNoRowsInRange so callers can tell
// "filter matched nothing" apart from "no data at all".
func FilterByDate(points []Point, from, to time.Time) ([]Point, error) {
	if from.IsZero() && to.IsZero() {
		return points, nil
	}

	filtered := make([]Point, 0, len(points))
	for _, p := range points {
		ts, ok := parseTimestamp(p.Timestamp)
		if !ok {
			continue
		}
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		filtered = append(filtered, p)
	}

	if len(filtered) == 0 {
		return nil, ErrNoRowsInRange
	}
	return filtered, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
