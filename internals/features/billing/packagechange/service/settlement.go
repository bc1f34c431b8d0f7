// file: internals/features/billing/packagechange/service/settlement.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"netbill_backend/internals/features/billing/packagechange/model"
	recordService "netbill_backend/internals/features/billing/records/service"
	customerModel "netbill_backend/internals/features/customers/customers/model"
	packageModel "netbill_backend/internals/features/packages/model"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPackageNotFound  = errors.New("package not found")
	ErrRequestNotFound  = errors.New("package change request not found")
	ErrWrongPassword    = errors.New("invalid customer credentials")
	ErrPackageMismatch  = errors.New("current package does not match customer's package")
	ErrPendingExists    = errors.New("customer already has a pending package change request")
	ErrNotPending       = errors.New("request has already been decided")
	ErrSamePackage      = errors.New("requested package is the same as the current one")
)

// Store is the persistence surface for settlement. Transact runs fn against
// a store bound to one database transaction; the decision flow uses it so
// the pending-state guard and the customer mutation commit together.
type Store interface {
	Transact(fn func(tx Store) error) error

	CustomerByID(id uuid.UUID) (*customerModel.CustomerModel, error)
	PackageByID(id uuid.UUID) (*packageModel.PackageModel, error)

	HasPendingRequest(customerID uuid.UUID) (bool, error)
	CreateRequest(req *model.PackageChangeRequestModel) error
	IsDuplicate(err error) bool

	// RequestByIDForUpdate locks the row for the rest of the transaction.
	RequestByIDForUpdate(id uuid.UUID) (*model.PackageChangeRequestModel, error)
	UpdateRequestDecision(id uuid.UUID, status model.PackageChangeStatus, adminNotes *string, decidedBy *uuid.UUID, decidedAt time.Time) error
	UpdateCustomerPlan(customerID, packageID uuid.UUID, expiry time.Time, totalDueBDT int, status customerModel.CustomerStatus) error
}

type SettlementService struct {
	st Store
}

func NewSettlementService(st Store) *SettlementService {
	return &SettlementService{st: st}
}

/* ======================= SUBMIT ======================= */

type SubmitInput struct {
	CustomerID         uuid.UUID
	CurrentPackageID   uuid.UUID
	RequestedPackageID uuid.UUID
	Password           string
}

// Submit verifies the customer's portal credential, prices the switch and
// stores a pending request. The customer record itself is untouched until
// an admin approves.
func (s *SettlementService) Submit(in SubmitInput, today time.Time) (*model.PackageChangeRequestModel, *ProrationResult, error) {
	cust, err := s.st.CustomerByID(in.CustomerID)
	if err != nil {
		return nil, nil, ErrCustomerNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(cust.CustomerPortalPasswordHash), []byte(in.Password)) != nil {
		return nil, nil, ErrWrongPassword
	}

	if cust.CustomerPackageID == nil || *cust.CustomerPackageID != in.CurrentPackageID {
		return nil, nil, ErrPackageMismatch
	}
	if in.CurrentPackageID == in.RequestedPackageID {
		return nil, nil, ErrSamePackage
	}

	oldPkg, err := s.st.PackageByID(in.CurrentPackageID)
	if err != nil {
		return nil, nil, ErrPackageNotFound
	}
	newPkg, err := s.st.PackageByID(in.RequestedPackageID)
	if err != nil {
		return nil, nil, ErrPackageNotFound
	}

	// Friendly pre-check; the partial unique index is authoritative.
	if pending, err := s.st.HasPendingRequest(in.CustomerID); err != nil {
		return nil, nil, err
	} else if pending {
		return nil, nil, ErrPendingExists
	}

	var expiry time.Time
	if cust.CustomerExpiryDate != nil {
		expiry = *cust.CustomerExpiryDate
	}
	pr := CalculateProration(expiry, today,
		oldPkg.PackageMonthlyPriceBDT, oldPkg.PackageValidityDays,
		newPkg.PackageMonthlyPriceBDT, newPkg.PackageValidityDays)

	req := &model.PackageChangeRequestModel{
		PackageChangeRequestCustomerID:         in.CustomerID,
		PackageChangeRequestCurrentPackageID:   in.CurrentPackageID,
		PackageChangeRequestRequestedPackageID: in.RequestedPackageID,
		PackageChangeRequestProratedCreditBDT:  pr.CreditBDT,
		PackageChangeRequestProratedChargeBDT:  pr.ChargeBDT,
		PackageChangeRequestStatus:             model.PackageChangeStatusPending,
	}
	if err := s.st.CreateRequest(req); err != nil {
		if s.st.IsDuplicate(err) {
			return nil, nil, ErrPendingExists
		}
		return nil, nil, err
	}

	return req, &pr, nil
}

/* ======================= DECIDE ======================= */

type DecideInput struct {
	RequestID  uuid.UUID
	Approve    bool
	AdminNotes *string
	DecidedBy  *uuid.UUID
}

// Decide moves a pending request to its terminal state. Approval settles the
// prorated amounts into the running balance, assigns the new package and
// restarts the cycle from today; both writes commit in one transaction
// guarded by the pending-state check, so a second decide on the same request
// fails with ErrNotPending and the customer is mutated exactly once.
func (s *SettlementService) Decide(in DecideInput, today time.Time) error {
	return s.st.Transact(func(tx Store) error {
		req, err := tx.RequestByIDForUpdate(in.RequestID)
		if err != nil {
			return ErrRequestNotFound
		}
		if req.PackageChangeRequestStatus != model.PackageChangeStatusPending {
			return ErrNotPending
		}

		now := time.Now()

		if !in.Approve {
			return tx.UpdateRequestDecision(req.PackageChangeRequestID,
				model.PackageChangeStatusRejected, in.AdminNotes, in.DecidedBy, now)
		}

		cust, err := tx.CustomerByID(req.PackageChangeRequestCustomerID)
		if err != nil {
			return ErrCustomerNotFound
		}
		newPkg, err := tx.PackageByID(req.PackageChangeRequestRequestedPackageID)
		if err != nil {
			return ErrPackageNotFound
		}

		netCharge := req.PackageChangeRequestProratedChargeBDT - req.PackageChangeRequestProratedCreditBDT
		newDue := cust.CustomerTotalDueBDT + netCharge
		if newDue < 0 {
			newDue = 0
		}
		newExpiry := truncateToDay(today).AddDate(0, 0, newPkg.PackageValidityDays)
		newStatus := recordService.DeriveStatus(newExpiry, newDue, cust.CustomerStatus, newPkg.PackageMonthlyPriceBDT, today)

		if err := tx.UpdateCustomerPlan(cust.CustomerID, newPkg.PackageID, newExpiry, newDue, newStatus); err != nil {
			return err
		}
		return tx.UpdateRequestDecision(req.PackageChangeRequestID,
			model.PackageChangeStatusApproved, in.AdminNotes, in.DecidedBy, now)
	})
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
