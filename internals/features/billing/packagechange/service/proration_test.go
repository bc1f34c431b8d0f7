package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateProration(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name                       string
		expiry                     time.Time
		oldPrice, oldValidity      int
		newPrice, newValidity      int
		wantDays                   int
		wantCredit, wantCharge     int
		wantNet                    int
	}{
		{
			name:     "upgrade with ten days remaining",
			expiry:   today.AddDate(0, 0, 10),
			oldPrice: 600, oldValidity: 30,
			newPrice: 1000, newValidity: 30,
			wantDays:   10,
			wantCredit: 200, // round(10 * 20)
			wantCharge: 333, // round(10 * 33.33)
			wantNet:    133,
		},
		{
			name:     "downgrade yields negative net charge",
			expiry:   today.AddDate(0, 0, 15),
			oldPrice: 1000, oldValidity: 30,
			newPrice: 600, newValidity: 30,
			wantDays:   15,
			wantCredit: 500,
			wantCharge: 300,
			wantNet:    -200,
		},
		{
			name:     "expired cycle has nothing to prorate",
			expiry:   today.AddDate(0, 0, -3),
			oldPrice: 600, oldValidity: 30,
			newPrice: 1000, newValidity: 30,
			wantDays:   0,
			wantCredit: 0,
			wantCharge: 0,
			wantNet:    0,
		},
		{
			name:     "partial day counts as remaining",
			expiry:   today.AddDate(0, 0, 5),
			oldPrice: 900, oldValidity: 30,
			newPrice: 900, newValidity: 15,
			wantDays:   5,
			wantCredit: 150, // round(5 * 30)
			wantCharge: 300, // round(5 * 60)
			wantNet:    150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProration(tt.expiry, today, tt.oldPrice, tt.oldValidity, tt.newPrice, tt.newValidity)
			assert.Equal(t, tt.wantDays, got.DaysRemaining)
			assert.Equal(t, tt.wantCredit, got.CreditBDT)
			assert.Equal(t, tt.wantCharge, got.ChargeBDT)
			assert.Equal(t, tt.wantNet, got.NetChargeBDT)
		})
	}
}

func TestDaysRemainingCeil(t *testing.T) {
	// Mid-day "today" against a midnight expiry: the started day still counts.
	today := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC)

	got := CalculateProration(expiry, today, 600, 30, 1000, 30)
	assert.Equal(t, 10, got.DaysRemaining)
}
