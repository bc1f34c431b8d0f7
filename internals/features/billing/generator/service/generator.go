// file: internals/features/billing/generator/service/generator.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	recordModel "netbill_backend/internals/features/billing/records/model"
	customerModel "netbill_backend/internals/features/customers/customers/model"
)

// DueCustomer is one row of the generator's working set: the customer joined
// with the owned package's price.
type DueCustomer struct {
	CustomerID      uuid.UUID                    `gorm:"column:customer_id"`
	ExpiryDate      time.Time                    `gorm:"column:expiry_date"`
	TotalDueBDT     int                          `gorm:"column:total_due_bdt"`
	Status          customerModel.CustomerStatus `gorm:"column:status"`
	PackageID       *uuid.UUID                   `gorm:"column:package_id"`
	MonthlyPriceBDT int                          `gorm:"column:monthly_price_bdt"`
}

// Store is the persistence surface the generator needs. Every mutation is a
// single atomic statement so overlapping runs cannot lose updates; the
// (customer_id, billing_date) unique index is the idempotency guard.
type Store interface {
	// DueCustomers returns non-suspended customers with expiry_date <= today.
	DueCustomers(today time.Time) ([]DueCustomer, error)
	HasBillingRecord(customerID uuid.UUID, billingDate time.Time) (bool, error)
	// CreateBillingRecord must surface the unique-index violation as a
	// duplicate error (IsDuplicate reports true) instead of swallowing it.
	CreateBillingRecord(rec *recordModel.BillingRecordModel) error
	IsDuplicate(err error) bool
	// AddChargeAndExpire rolls the cycle charge into the running balance and
	// flips status to expired in one UPDATE (total_due = total_due + amount).
	AddChargeAndExpire(customerID uuid.UUID, amountBDT int) error
	MarkExpired(customerID uuid.UUID) error
}

// RunReport is what the HTTP trigger returns under details{}.
type RunReport struct {
	Processed             int      `json:"processed"`
	BillsGenerated        int      `json:"billsGenerated"`
	BillingRecordsCreated int      `json:"billingRecordsCreated"`
	Errors                []string `json:"errors"`
}

// Run executes one billing-cycle pass over all due customers. Per-customer
// failures are collected and never abort the batch; only the initial fetch
// error is fatal. Safe to re-run: a customer already billed for their cycle
// date is skipped, and the balance roll fires only on the transition day for
// the run that actually created the record.
func Run(st Store, today time.Time) (RunReport, error) {
	report := RunReport{Errors: []string{}}

	customers, err := st.DueCustomers(today)
	if err != nil {
		return report, err
	}

	for _, c := range customers {
		report.Processed++

		if c.PackageID == nil {
			continue
		}

		billingDate := truncateToDay(c.ExpiryDate)
		daysOverdue := int(truncateToDay(today).Sub(billingDate).Hours() / 24)
		if daysOverdue < 0 {
			continue
		}

		exists, err := st.HasBillingRecord(c.CustomerID, billingDate)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("customer %s: %v", c.CustomerID, err))
			continue
		}

		created := false
		if !exists {
			rec := &recordModel.BillingRecordModel{
				BillingRecordCustomerID:  c.CustomerID,
				BillingRecordBillingDate: billingDate,
				BillingRecordAmountBDT:   c.MonthlyPriceBDT,
				BillingRecordStatus:      recordModel.BillingRecordStatusUnpaid,
			}
			switch err := st.CreateBillingRecord(rec); {
			case err == nil:
				created = true
				report.BillingRecordsCreated++
			case st.IsDuplicate(err):
				// A concurrent run won the insert race; treat as existing.
			default:
				report.Errors = append(report.Errors, fmt.Sprintf("customer %s: %v", c.CustomerID, err))
				continue
			}
		}

		switch {
		case daysOverdue == 0 && created:
			// Transition day: roll the charge into the balance exactly once.
			if err := st.AddChargeAndExpire(c.CustomerID, c.MonthlyPriceBDT); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("customer %s: %v", c.CustomerID, err))
				continue
			}
			report.BillsGenerated++
		case daysOverdue > 0 && c.Status != customerModel.CustomerStatusExpired:
			// Catch-up status flip, no additional charge.
			if err := st.MarkExpired(c.CustomerID); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("customer %s: %v", c.CustomerID, err))
				continue
			}
		}
	}

	return report, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
