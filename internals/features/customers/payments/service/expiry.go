// file: internals/features/customers/payments/service/expiry.go
package service

import (
	"time"
)

// CalculateNewExpiry rolls a customer's expiry forward by one package cycle
// after a covering payment. A customer paying early keeps their remaining
// days: the new cycle stacks on the current expiry. A lapsed customer
// restarts from today.
func CalculateNewExpiry(currentExpiry time.Time, validityDays int, today time.Time) time.Time {
	base := truncateToDay(today)
	if !currentExpiry.IsZero() {
		if e := truncateToDay(currentExpiry); e.After(base) {
			base = e
		}
	}
	return base.AddDate(0, 0, validityDays)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
