// ABOUTME: Tests for blob keys and the dynamic CSV freshness policy.

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSVKey(t *testing.T) {
	assert.Equal(t, "csv/2/159770/corrected-archive.csv",
		CSVKey("2", "159770", "corrected-archive"))
}

func TestBlobTTL(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   string
		fromDate time.Time
		want     time.Duration
	}{
		{
			name:   "archive without from date keeps the default day",
			period: "corrected-archive",
			want:   BlobTTLDefault,
		},
		{
			name:     "archive current-year data still held a day",
			period:   "corrected-archive",
			fromDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want:     BlobTTLDefault,
		},
		{
			name:     "archive data two years old held a week",
			period:   "corrected-archive",
			fromDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want:     BlobTTLOld,
		},
		{
			name:     "archive last-year data keeps the default",
			period:   "corrected-archive",
			fromDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want:     BlobTTLDefault,
		},
		{
			name:   "latest period capped at the recent window",
			period: "latest-months",
			want:   BlobTTLRecent,
		},
		{
			name:     "latest period with old from date still capped",
			period:   "latest-months",
			fromDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			want:     BlobTTLRecent,
		},
		{
			name:     "latest period current-year data expires hourly",
			period:   "latest-day",
			fromDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			want:     BlobTTLRecent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlobTTL(tt.period, tt.fromDate, now))
		})
	}
}
