// ABOUTME: Storage interfaces for CSV blob archival and daily request counting.
// ABOUTME: Defines the dynamic freshness policy for cached CSV downloads.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Blob freshness windows. Archive data is stable and cached for a day;
// current-year data changes often and expires after an hour; data two or
// more years old practically never changes.
const (
	BlobTTLDefault = 24 * time.Hour
	BlobTTLRecent  = time.Hour
	BlobTTLOld     = 7 * 24 * time.Hour
)

// BlobMeta describes a stored CSV blob.
type BlobMeta struct {
	Station   string
	Parameter string
	Period    string
}

// BlobStore archives downloaded CSV payloads. Get treats entries older
// than maxAge as absent.
type BlobStore interface {
	GetCSV(ctx context.Context, key string, maxAge time.Duration) (string, bool, error)
	PutCSV(ctx context.Context, key, data string, meta BlobMeta) error
}

// RequestCounter tracks request volume per day key and returns the
// post-increment count.
type RequestCounter interface {
	CheckAndIncrement(ctx context.Context, day string) (int, error)
}

// CSVKey builds the blob key for a parameter/station/period download.
func CSVKey(parameter, stationID, period string) string {
	return fmt.Sprintf("csv/%s/%s/%s.csv", parameter, stationID, period)
}

// BlobTTL computes how long a cached CSV stays fresh. The base window
// depends on how old the requested data is (via fromDate), then archive
// periods are held at least a day while latest periods are capped at the
// recent window because they keep changing.
func BlobTTL(period string, fromDate, now time.Time) time.Duration {
	ttl := BlobTTLDefault

	if !fromDate.IsZero() {
		yearDiff := now.Year() - fromDate.Year()
		if yearDiff >= 2 {
			ttl = BlobTTLOld
		} else if yearDiff == 0 {
			ttl = BlobTTLRecent
		}
	}

	if period == "corrected-archive" {
		if ttl < BlobTTLDefault {
			ttl = BlobTTLDefault
		}
	} else if ttl > BlobTTLRecent {
		ttl = BlobTTLRecent
	}

	return ttl
}
