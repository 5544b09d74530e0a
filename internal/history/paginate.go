// ABOUTME: Opaque-cursor pagination over ordered sequences.
// ABOUTME: Cursors are base64 decimal offsets; corrupt cursors degrade to the first page.

package history

import (
	"encoding/base64"
	"strconv"
)

// Page is one pagination window. NextCursor and PrevCursor are empty
// when there is no adjacent page in that direction. In reverse mode
// "next" moves toward older data and "prev" toward newer data.
type Page struct {
	Start      int // inclusive index into the underlying sequence
	End        int // exclusive
	Reversed   bool
	NextCursor string
	PrevCursor string
}

// EncodeCursor renders an offset as an opaque cursor.
func EncodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodeCursor parses a cursor back into an offset. Anything that does
// not round-trip (bad base64, non-numeric, negative) degrades to 0 so a
// forged or stale cursor restarts from the first page instead of erroring.
func DecodeCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// Paginate computes the window for a page of size limit over a sequence
// of length total. In reverse mode the offset counts how many of the
// newest items prior pages have consumed and the window is presented
// newest-first; in forward mode the offset is a plain index from the
// start. Windows are clamped to the sequence bounds.
func Paginate(total, limit int, cursor string, reverse bool) Page {
	if limit <= 0 {
		limit = 10
	}
	offset := DecodeCursor(cursor)

	if reverse {
		end := total - offset
		if end > total {
			end = total
		}
		if end < 0 {
			end = 0
		}
		start := end - limit
		if start < 0 {
			start = 0
		}

		p := Page{Start: start, End: end, Reversed: true}
		if start > 0 {
			p.NextCursor = EncodeCursor(offset + limit)
		}
		if end < total {
			p.PrevCursor = EncodeCursor(offset - limit)
		}
		return p
	}

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	p := Page{Start: start, End: end}
	if start > 0 {
		prev := start - limit
		if prev < 0 {
			prev = 0
		}
		p.PrevCursor = EncodeCursor(prev)
	}
	if end < total {
		p.NextCursor = EncodeCursor(end)
	}
	return p
}

// Slice applies a page window to points, reversing the slice for
// newest-first display when the page is reversed.
func Slice(points []Point, p Page) []Point {
	window := points[p.Start:p.End]
	if !p.Reversed {
		return window
	}
	out := make([]Point, len(window))
	for i, v := range window {
		out[len(window)-1-i] = v
	}
	return out
}
