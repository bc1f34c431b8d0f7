// file: internals/features/customers/payments/service/payment.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	recordModel "netbill_backend/internals/features/billing/records/model"
	recordService "netbill_backend/internals/features/billing/records/service"
	customerModel "netbill_backend/internals/features/customers/customers/model"
	"netbill_backend/internals/features/customers/payments/model"
	packageModel "netbill_backend/internals/features/packages/model"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidAmount    = errors.New("payment amount must be greater than zero")
)

// Store is the persistence surface for payment recording. Transact wraps
// the whole apply flow so the ledger entry and the balance update commit
// together.
type Store interface {
	Transact(fn func(tx Store) error) error

	CustomerByIDForUpdate(id uuid.UUID) (*customerModel.CustomerModel, error)
	PackageByID(id uuid.UUID) (*packageModel.PackageModel, error)

	CreatePayment(p *model.PaymentModel) error
	UpdateCustomerAfterPayment(customerID uuid.UUID, totalDueBDT int, expiry *time.Time, status customerModel.CustomerStatus) error

	// OpenBillingRecords returns unpaid and partial rows oldest first.
	OpenBillingRecords(customerID uuid.UUID) ([]recordModel.BillingRecordModel, error)
	UpdateBillingRecordPayment(id uuid.UUID, amountPaidBDT int, status recordModel.BillingRecordStatus) error
}

type PaymentService struct {
	st Store
}

func NewPaymentService(st Store) *PaymentService {
	return &PaymentService{st: st}
}

type RecordInput struct {
	CustomerID uuid.UUID
	AmountBDT  int
	Method     model.PaymentMethod
	Reference  *string
	ReceivedBy *uuid.UUID
}

type RecordResult struct {
	Payment        *model.PaymentModel
	NewTotalDueBDT int
	NewExpiryDate  *time.Time
	NewStatus      customerModel.CustomerStatus
	ExpiryExtended bool
	RecordsSettled int
}

// Record applies a payment: reduces the running balance (never below zero),
// settles open billing records oldest first, and extends the expiry by one
// validity period when the balance clears. Suspension stays sticky; paying
// off dues does not lift an operator suspension.
func (s *PaymentService) Record(in RecordInput, today time.Time) (*RecordResult, error) {
	if in.AmountBDT <= 0 {
		return nil, ErrInvalidAmount
	}

	var out RecordResult
	err := s.st.Transact(func(tx Store) error {
		cust, err := tx.CustomerByIDForUpdate(in.CustomerID)
		if err != nil {
			return ErrCustomerNotFound
		}

		newDue := cust.CustomerTotalDueBDT - in.AmountBDT
		if newDue < 0 {
			newDue = 0
		}

		var monthly, validity int
		if cust.CustomerPackageID != nil {
			pkg, err := tx.PackageByID(*cust.CustomerPackageID)
			if err == nil {
				monthly = pkg.PackageMonthlyPriceBDT
				validity = pkg.PackageValidityDays
			}
		}

		// A payment covering at least one monthly fee buys a validity
		// period even while older dues remain.
		coversCycle := newDue == 0 || (monthly > 0 && in.AmountBDT >= monthly)

		newExpiry := cust.CustomerExpiryDate
		if coversCycle && validity > 0 {
			e := CalculateNewExpiry(deref(cust.CustomerExpiryDate), validity, today)
			newExpiry = &e
			out.ExpiryExtended = true
		}

		var expiryForStatus time.Time
		if newExpiry != nil {
			expiryForStatus = *newExpiry
		}
		newStatus := recordService.DeriveStatus(expiryForStatus, newDue, cust.CustomerStatus, monthly, today)

		payment := &model.PaymentModel{
			PaymentCustomerID:      in.CustomerID,
			PaymentAmountBDT:       in.AmountBDT,
			PaymentMethod:          in.Method,
			PaymentReference:       in.Reference,
			PaymentRemainingDueBDT: newDue,
			PaymentReceivedBy:      in.ReceivedBy,
			PaymentPaidAt:          time.Now(),
		}
		if err := tx.CreatePayment(payment); err != nil {
			return err
		}

		settled, err := settleOpenRecords(tx, in.CustomerID, in.AmountBDT)
		if err != nil {
			return err
		}

		if err := tx.UpdateCustomerAfterPayment(in.CustomerID, newDue, newExpiry, newStatus); err != nil {
			return err
		}

		out.Payment = payment
		out.NewTotalDueBDT = newDue
		out.NewExpiryDate = newExpiry
		out.NewStatus = newStatus
		out.RecordsSettled = settled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// settleOpenRecords walks open cycles oldest first, filling each until the
// payment runs out. Overpayment beyond all open records is absorbed by the
// running balance alone.
func settleOpenRecords(tx Store, customerID uuid.UUID, amountBDT int) (int, error) {
	open, err := tx.OpenBillingRecords(customerID)
	if err != nil {
		return 0, err
	}

	remaining := amountBDT
	settled := 0
	for i := range open {
		if remaining <= 0 {
			break
		}
		rec := &open[i]
		outstanding := rec.BillingRecordAmountBDT - rec.BillingRecordAmountPaidBDT
		if outstanding <= 0 {
			continue
		}

		applied := remaining
		if applied > outstanding {
			applied = outstanding
		}
		newPaid := rec.BillingRecordAmountPaidBDT + applied
		status := recordModel.BillingRecordStatusPartial
		if newPaid >= rec.BillingRecordAmountBDT {
			status = recordModel.BillingRecordStatusPaid
		}
		if err := tx.UpdateBillingRecordPayment(rec.BillingRecordID, newPaid, status); err != nil {
			return settled, err
		}
		remaining -= applied
		settled++
	}
	return settled, nil
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
