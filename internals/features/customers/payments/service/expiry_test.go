package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateNewExpiry(t *testing.T) {
	today := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		expiry   time.Time
		validity int
		want     time.Time
	}{
		{
			name:     "future expiry stacks the new cycle",
			expiry:   day(2025, 6, 20),
			validity: 30,
			want:     day(2025, 7, 20),
		},
		{
			name:     "past expiry restarts from today",
			expiry:   day(2025, 6, 1),
			validity: 30,
			want:     day(2025, 7, 15),
		},
		{
			name:     "expiring today restarts from today",
			expiry:   day(2025, 6, 15),
			validity: 30,
			want:     day(2025, 7, 15),
		},
		{
			name:     "zero expiry starts the first cycle from today",
			expiry:   time.Time{},
			validity: 7,
			want:     day(2025, 6, 22),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateNewExpiry(tt.expiry, tt.validity, today)
			assert.Equal(t, tt.want, got)
		})
	}
}
