// file: internals/features/billing/records/service/billing_status.go
package service

import (
	"fmt"
	"time"

	customerModel "netbill_backend/internals/features/customers/customers/model"
)

// Overdue beyond this many days collapses into one label.
const longOverdueAfterDays = 30

// StatusResult is the customer-facing billing view derived from the raw
// subscriber fields. It is a pure projection, safe to compute anywhere.
type StatusResult struct {
	Status           customerModel.CustomerStatus `json:"status"`
	StatusLabel      string                       `json:"status_label"`
	DaysUntilBilling int                          `json:"days_until_billing"`
	DisplayDueBDT    int                          `json:"display_due_bdt"`
}

// DaysUntilBilling counts whole calendar days from today to the expiry date.
// Time-of-day and timezone offsets inside a day are ignored.
func DaysUntilBilling(expiryDate, today time.Time) int {
	e := truncateToDay(expiryDate)
	t := truncateToDay(today)
	return int(e.Sub(t).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalculateStatus derives the display status, label and payable amount for a
// customer. today is explicit so callers and tests stay deterministic.
//
// Suspension is sticky: once a customer is suspended only an explicit
// reactivation clears it, the calculator never does.
func CalculateStatus(expiryDate time.Time, totalDueBDT int, current customerModel.CustomerStatus, monthlyPriceBDT int, today time.Time) StatusResult {
	if current == customerModel.CustomerStatusSuspended {
		days := 0
		if !expiryDate.IsZero() {
			days = DaysUntilBilling(expiryDate, today)
		}
		return StatusResult{
			Status:           customerModel.CustomerStatusSuspended,
			StatusLabel:      "Suspended",
			DaysUntilBilling: days,
			DisplayDueBDT:    clampDue(totalDueBDT),
		}
	}

	if expiryDate.IsZero() {
		// No package assigned yet, nothing scheduled to bill.
		return StatusResult{
			Status:        customerModel.CustomerStatusActive,
			StatusLabel:   "No billing scheduled",
			DisplayDueBDT: clampDue(totalDueBDT),
		}
	}

	days := DaysUntilBilling(expiryDate, today)

	switch {
	case days < 0:
		overdue := -days
		label := fmt.Sprintf("Overdue %d days", overdue)
		if overdue == 1 {
			label = "Overdue 1 day"
		}
		if overdue > longOverdueAfterDays {
			label = "Long Overdue"
		}
		return StatusResult{
			Status:           customerModel.CustomerStatusExpired,
			StatusLabel:      label,
			DaysUntilBilling: days,
			DisplayDueBDT:    clampDue(totalDueBDT),
		}

	case days == 0:
		return StatusResult{
			Status:           customerModel.CustomerStatusExpiring,
			StatusLabel:      "Due Today",
			DaysUntilBilling: days,
			DisplayDueBDT:    clampDue(totalDueBDT),
		}

	case days <= 3:
		label := fmt.Sprintf("Due in %d days", days)
		if days == 1 {
			label = "Due in 1 day"
		}
		return StatusResult{
			Status:           customerModel.CustomerStatusExpiring,
			StatusLabel:      label,
			DaysUntilBilling: days,
			DisplayDueBDT:    pastCycleDue(totalDueBDT, monthlyPriceBDT),
		}

	default:
		return StatusResult{
			Status:           customerModel.CustomerStatusActive,
			StatusLabel:      fmt.Sprintf("%d days left", days),
			DaysUntilBilling: days,
			DisplayDueBDT:    pastCycleDue(totalDueBDT, monthlyPriceBDT),
		}
	}
}

// DeriveStatus is the single derivation the mutating flows use when writing
// the persisted customer_status cache. Same rules as CalculateStatus.
func DeriveStatus(expiryDate time.Time, totalDueBDT int, current customerModel.CustomerStatus, monthlyPriceBDT int, today time.Time) customerModel.CustomerStatus {
	return CalculateStatus(expiryDate, totalDueBDT, current, monthlyPriceBDT, today).Status
}

// Before the cycle officially bills, only older accumulated debt is
// surfaced: the current cycle's charge is hidden from the display amount.
func pastCycleDue(totalDueBDT, monthlyPriceBDT int) int {
	return clampDue(totalDueBDT - monthlyPriceBDT)
}

func clampDue(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
