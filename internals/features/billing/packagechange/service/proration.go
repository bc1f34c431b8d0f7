// file: internals/features/billing/packagechange/service/proration.go
package service

import (
	"math"
	"time"
)

// ProrationResult is the settlement snapshot computed when a customer asks
// to switch packages mid-cycle. Amounts are whole BDT.
type ProrationResult struct {
	DaysRemaining int `json:"days_remaining"`
	CreditBDT     int `json:"prorated_credit"`
	ChargeBDT     int `json:"prorated_charge"`
	NetChargeBDT  int `json:"net_charge"`
}

// CalculateProration splits both packages into daily rates and prices the
// remaining days of the current cycle under each. Credit refunds the unused
// portion of the old package, charge bills the same days at the new rate.
func CalculateProration(expiryDate, today time.Time, oldMonthlyBDT, oldValidityDays, newMonthlyBDT, newValidityDays int) ProrationResult {
	days := daysRemaining(expiryDate, today)

	credit := prorate(days, oldMonthlyBDT, oldValidityDays)
	charge := prorate(days, newMonthlyBDT, newValidityDays)

	return ProrationResult{
		DaysRemaining: days,
		CreditBDT:     credit,
		ChargeBDT:     charge,
		NetChargeBDT:  charge - credit,
	}
}

// daysRemaining = max(0, ceil(expiry − today)): a partially elapsed day
// still counts as remaining.
func daysRemaining(expiryDate, today time.Time) int {
	if expiryDate.IsZero() {
		return 0
	}
	d := int(math.Ceil(expiryDate.Sub(today).Hours() / 24))
	if d < 0 {
		return 0
	}
	return d
}

// prorate rounds half away from zero on the daily-rate product.
func prorate(days, monthlyBDT, validityDays int) int {
	if days <= 0 || validityDays <= 0 {
		return 0
	}
	rate := float64(monthlyBDT) / float64(validityDays)
	return int(math.Round(float64(days) * rate))
}
