package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerModel "netbill_backend/internals/features/customers/customers/model"
)

var testToday = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func days(n int) time.Time {
	return testToday.AddDate(0, 0, n)
}

func TestCalculateStatus(t *testing.T) {
	tests := []struct {
		name        string
		expiry      time.Time
		totalDue    int
		current     customerModel.CustomerStatus
		price       int
		wantStatus  customerModel.CustomerStatus
		wantLabel   string
		wantDisplay int
		wantDays    int
	}{
		{
			name:        "overdue five days shows full balance",
			expiry:      days(-5),
			totalDue:    500,
			current:     customerModel.CustomerStatusExpired,
			price:       800,
			wantStatus:  customerModel.CustomerStatusExpired,
			wantLabel:   "Overdue 5 days",
			wantDisplay: 500,
			wantDays:    -5,
		},
		{
			name:        "overdue one day uses singular label",
			expiry:      days(-1),
			totalDue:    800,
			current:     customerModel.CustomerStatusExpired,
			price:       800,
			wantStatus:  customerModel.CustomerStatusExpired,
			wantLabel:   "Overdue 1 day",
			wantDisplay: 800,
			wantDays:    -1,
		},
		{
			name:        "long overdue beyond thirty days",
			expiry:      days(-31),
			totalDue:    2400,
			current:     customerModel.CustomerStatusExpired,
			price:       800,
			wantStatus:  customerModel.CustomerStatusExpired,
			wantLabel:   "Long Overdue",
			wantDisplay: 2400,
			wantDays:    -31,
		},
		{
			name:        "exactly thirty days overdue keeps the count",
			expiry:      days(-30),
			totalDue:    2400,
			current:     customerModel.CustomerStatusExpired,
			price:       800,
			wantStatus:  customerModel.CustomerStatusExpired,
			wantLabel:   "Overdue 30 days",
			wantDisplay: 2400,
			wantDays:    -30,
		},
		{
			name:        "due today shows full balance",
			expiry:      days(0),
			totalDue:    800,
			current:     customerModel.CustomerStatusActive,
			price:       800,
			wantStatus:  customerModel.CustomerStatusExpiring,
			wantLabel:   "Due Today",
			wantDisplay: 800,
			wantDays:    0,
		},
		{
			name:        "expiring in two days hides current cycle charge",
			expiry:      days(2),
			totalDue:    1000,
			current:     customerModel.CustomerStatusActive,
			price:       800,
			wantStatus:  customerModel.CustomerStatusExpiring,
			wantLabel:   "Due in 2 days",
			wantDisplay: 200,
			wantDays:    2,
		},
		{
			name:        "expiring tomorrow uses singular label",
			expiry:      days(1),
			totalDue:    800,
			current:     customerModel.CustomerStatusActive,
			price:       800,
			wantStatus:  customerModel.CustomerStatusExpiring,
			wantLabel:   "Due in 1 day",
			wantDisplay: 0,
			wantDays:    1,
		},
		{
			name:        "active shows only past-cycle debt",
			expiry:      days(12),
			totalDue:    1600,
			current:     customerModel.CustomerStatusActive,
			price:       800,
			wantStatus:  customerModel.CustomerStatusActive,
			wantLabel:   "12 days left",
			wantDisplay: 800,
			wantDays:    12,
		},
		{
			name:        "active with only current cycle billed shows zero",
			expiry:      days(20),
			totalDue:    800,
			current:     customerModel.CustomerStatusActive,
			price:       800,
			wantStatus:  customerModel.CustomerStatusActive,
			wantLabel:   "20 days left",
			wantDisplay: 0,
			wantDays:    20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatus(tt.expiry, tt.totalDue, tt.current, tt.price, testToday)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantLabel, got.StatusLabel)
			assert.Equal(t, tt.wantDisplay, got.DisplayDueBDT)
			assert.Equal(t, tt.wantDays, got.DaysUntilBilling)
		})
	}
}

func TestCalculateStatusSuspendedIsSticky(t *testing.T) {
	for _, offset := range []int{-40, -1, 0, 2, 15} {
		got := CalculateStatus(days(offset), 1200, customerModel.CustomerStatusSuspended, 800, testToday)
		assert.Equal(t, customerModel.CustomerStatusSuspended, got.Status, "offset %d", offset)
		assert.Equal(t, "Suspended", got.StatusLabel)
		assert.Equal(t, 1200, got.DisplayDueBDT)
	}
}

func TestCalculateStatusDisplayDueNeverNegative(t *testing.T) {
	for _, due := range []int{0, 100, 800, 5000} {
		for _, price := range []int{0, 500, 800, 10000} {
			for _, offset := range []int{-10, 0, 2, 10} {
				got := CalculateStatus(days(offset), due, customerModel.CustomerStatusActive, price, testToday)
				require.GreaterOrEqual(t, got.DisplayDueBDT, 0,
					"due=%d price=%d offset=%d", due, price, offset)
			}
		}
	}
}

func TestCalculateStatusIgnoresTimeOfDay(t *testing.T) {
	lateToday := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	expiryMorning := time.Date(2025, 6, 17, 0, 1, 0, 0, time.UTC)

	got := CalculateStatus(expiryMorning, 0, customerModel.CustomerStatusActive, 800, lateToday)
	assert.Equal(t, 2, got.DaysUntilBilling)
}

func TestCalculateStatusZeroExpiry(t *testing.T) {
	got := CalculateStatus(time.Time{}, 300, customerModel.CustomerStatusActive, 800, testToday)
	assert.Equal(t, customerModel.CustomerStatusActive, got.Status)
	assert.Equal(t, "No billing scheduled", got.StatusLabel)
	assert.Equal(t, 300, got.DisplayDueBDT)
}

func TestDeriveStatusMatchesCalculate(t *testing.T) {
	for _, offset := range []int{-40, -1, 0, 3, 10} {
		want := CalculateStatus(days(offset), 900, customerModel.CustomerStatusActive, 800, testToday).Status
		got := DeriveStatus(days(offset), 900, customerModel.CustomerStatusActive, 800, testToday)
		assert.Equal(t, want, got)
	}
}
