package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"netbill_backend/internals/features/billing/packagechange/model"
	customerModel "netbill_backend/internals/features/customers/customers/model"
	packageModel "netbill_backend/internals/features/packages/model"
)

var errDuplicatePending = errors.New("duplicate key value violates unique constraint")

type fakeStore struct {
	customers map[uuid.UUID]*customerModel.CustomerModel
	packages  map[uuid.UUID]*packageModel.PackageModel
	requests  map[uuid.UUID]*model.PackageChangeRequestModel
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[uuid.UUID]*customerModel.CustomerModel{},
		packages:  map[uuid.UUID]*packageModel.PackageModel{},
		requests:  map[uuid.UUID]*model.PackageChangeRequestModel{},
	}
}

func (f *fakeStore) Transact(fn func(tx Store) error) error { return fn(f) }

func (f *fakeStore) CustomerByID(id uuid.UUID) (*customerModel.CustomerModel, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (f *fakeStore) PackageByID(id uuid.UUID) (*packageModel.PackageModel, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (f *fakeStore) HasPendingRequest(customerID uuid.UUID) (bool, error) {
	for _, r := range f.requests {
		if r.PackageChangeRequestCustomerID == customerID &&
			r.PackageChangeRequestStatus == model.PackageChangeStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateRequest(req *model.PackageChangeRequestModel) error {
	// mirror the partial unique index
	if pending, _ := f.HasPendingRequest(req.PackageChangeRequestCustomerID); pending {
		return errDuplicatePending
	}
	req.PackageChangeRequestID = uuid.New()
	f.requests[req.PackageChangeRequestID] = req
	return nil
}

func (f *fakeStore) IsDuplicate(err error) bool { return errors.Is(err, errDuplicatePending) }

func (f *fakeStore) RequestByIDForUpdate(id uuid.UUID) (*model.PackageChangeRequestModel, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) UpdateRequestDecision(id uuid.UUID, status model.PackageChangeStatus, adminNotes *string, decidedBy *uuid.UUID, decidedAt time.Time) error {
	r, ok := f.requests[id]
	if !ok {
		return errors.New("record not found")
	}
	r.PackageChangeRequestStatus = status
	r.PackageChangeRequestAdminNotes = adminNotes
	r.PackageChangeRequestDecidedBy = decidedBy
	r.PackageChangeRequestDecidedAt = &decidedAt
	return nil
}

func (f *fakeStore) UpdateCustomerPlan(customerID, packageID uuid.UUID, expiry time.Time, totalDueBDT int, status customerModel.CustomerStatus) error {
	c, ok := f.customers[customerID]
	if !ok {
		return errors.New("record not found")
	}
	c.CustomerPackageID = &packageID
	c.CustomerExpiryDate = &expiry
	c.CustomerTotalDueBDT = totalDueBDT
	c.CustomerStatus = status
	return nil
}

/* ======================= fixtures ======================= */

const portalPassword = "s3cret-portal"

func (f *fakeStore) addPackage(priceBDT, validityDays int) uuid.UUID {
	id := uuid.New()
	f.packages[id] = &packageModel.PackageModel{
		PackageID:              id,
		PackageName:            "pkg-" + id.String()[:8],
		PackageMonthlyPriceBDT: priceBDT,
		PackageValidityDays:    validityDays,
		PackageSpeedMbps:       20,
		PackageIsActive:        true,
	}
	return id
}

func (f *fakeStore) addCustomer(t *testing.T, pkgID uuid.UUID, expiry time.Time, dueBDT int) uuid.UUID {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(portalPassword), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	f.customers[id] = &customerModel.CustomerModel{
		CustomerID:                 id,
		CustomerCode:               "NB-1001",
		CustomerName:               "Rahim Uddin",
		CustomerPhone:              "01711000000",
		CustomerStatus:             customerModel.CustomerStatusActive,
		CustomerExpiryDate:         &expiry,
		CustomerTotalDueBDT:        dueBDT,
		CustomerPackageID:          &pkgID,
		CustomerPortalPasswordHash: string(hash),
	}
	return id
}

/* ======================= submit ======================= */

func TestSubmitComputesProration(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldPkg := st.addPackage(600, 30)
	newPkg := st.addPackage(1000, 30)
	custID := st.addCustomer(t, oldPkg, today.AddDate(0, 0, 10), 0)

	svc := NewSettlementService(st)
	req, pr, err := svc.Submit(SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   oldPkg,
		RequestedPackageID: newPkg,
		Password:           portalPassword,
	}, today)
	require.NoError(t, err)

	assert.Equal(t, 200, pr.CreditBDT)
	assert.Equal(t, 333, pr.ChargeBDT)
	assert.Equal(t, 133, pr.NetChargeBDT)
	assert.Equal(t, model.PackageChangeStatusPending, req.PackageChangeRequestStatus)
	assert.Equal(t, 200, req.PackageChangeRequestProratedCreditBDT)
	assert.Equal(t, 333, req.PackageChangeRequestProratedChargeBDT)

	// no customer mutation on submit
	assert.Equal(t, 0, st.customers[custID].CustomerTotalDueBDT)
	assert.Equal(t, oldPkg, *st.customers[custID].CustomerPackageID)
}

func TestSubmitRejectsWrongPassword(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldPkg := st.addPackage(600, 30)
	newPkg := st.addPackage(1000, 30)
	custID := st.addCustomer(t, oldPkg, today.AddDate(0, 0, 10), 0)

	svc := NewSettlementService(st)
	_, _, err := svc.Submit(SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   oldPkg,
		RequestedPackageID: newPkg,
		Password:           "wrong",
	}, today)
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Empty(t, st.requests)
}

func TestSubmitRejectsSecondPending(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldPkg := st.addPackage(600, 30)
	newPkg := st.addPackage(1000, 30)
	custID := st.addCustomer(t, oldPkg, today.AddDate(0, 0, 10), 0)

	svc := NewSettlementService(st)
	in := SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   oldPkg,
		RequestedPackageID: newPkg,
		Password:           portalPassword,
	}
	_, _, err := svc.Submit(in, today)
	require.NoError(t, err)

	_, _, err = svc.Submit(in, today)
	assert.ErrorIs(t, err, ErrPendingExists)
	assert.Len(t, st.requests, 1)
}

func TestSubmitRejectsPackageMismatch(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldPkg := st.addPackage(600, 30)
	otherPkg := st.addPackage(800, 30)
	newPkg := st.addPackage(1000, 30)
	custID := st.addCustomer(t, oldPkg, today.AddDate(0, 0, 10), 0)

	svc := NewSettlementService(st)
	_, _, err := svc.Submit(SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   otherPkg,
		RequestedPackageID: newPkg,
		Password:           portalPassword,
	}, today)
	assert.ErrorIs(t, err, ErrPackageMismatch)
}

/* ======================= decide ======================= */

func TestApproveSettlesAndIsSingleFire(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldPkg := st.addPackage(600, 30)
	newPkg := st.addPackage(1000, 30)
	custID := st.addCustomer(t, oldPkg, today.AddDate(0, 0, 10), 100)

	svc := NewSettlementService(st)
	req, _, err := svc.Submit(SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   oldPkg,
		RequestedPackageID: newPkg,
		Password:           portalPassword,
	}, today)
	require.NoError(t, err)

	admin := uuid.New()
	in := DecideInput{RequestID: req.PackageChangeRequestID, Approve: true, DecidedBy: &admin}

	require.NoError(t, svc.Decide(in, today))

	cust := st.customers[custID]
	assert.Equal(t, newPkg, *cust.CustomerPackageID)
	assert.Equal(t, 233, cust.CustomerTotalDueBDT, "100 existing + 133 net charge")
	assert.Equal(t, today.AddDate(0, 0, 30), *cust.CustomerExpiryDate)
	assert.Equal(t, customerModel.CustomerStatusActive, cust.CustomerStatus)
	assert.Equal(t, model.PackageChangeStatusApproved, st.requests[req.PackageChangeRequestID].PackageChangeRequestStatus)

	// second approve is a state conflict, customer untouched
	err = svc.Decide(in, today)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, 233, cust.CustomerTotalDueBDT)
	assert.Equal(t, today.AddDate(0, 0, 30), *cust.CustomerExpiryDate)
}

func TestApproveClampsNegativeDueToZero(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldPkg := st.addPackage(1000, 30)
	newPkg := st.addPackage(600, 30)
	custID := st.addCustomer(t, oldPkg, today.AddDate(0, 0, 15), 0)

	svc := NewSettlementService(st)
	req, pr, err := svc.Submit(SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   oldPkg,
		RequestedPackageID: newPkg,
		Password:           portalPassword,
	}, today)
	require.NoError(t, err)
	require.Negative(t, pr.NetChargeBDT)

	require.NoError(t, svc.Decide(DecideInput{RequestID: req.PackageChangeRequestID, Approve: true}, today))
	assert.Equal(t, 0, st.customers[custID].CustomerTotalDueBDT, "due never goes negative")
}

func TestRejectLeavesCustomerUntouched(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	oldPkg := st.addPackage(600, 30)
	newPkg := st.addPackage(1000, 30)
	expiry := today.AddDate(0, 0, 10)
	custID := st.addCustomer(t, oldPkg, expiry, 100)

	svc := NewSettlementService(st)
	req, _, err := svc.Submit(SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   oldPkg,
		RequestedPackageID: newPkg,
		Password:           portalPassword,
	}, today)
	require.NoError(t, err)

	notes := "insufficient coverage in area"
	require.NoError(t, svc.Decide(DecideInput{RequestID: req.PackageChangeRequestID, Approve: false, AdminNotes: &notes}, today))

	cust := st.customers[custID]
	assert.Equal(t, oldPkg, *cust.CustomerPackageID)
	assert.Equal(t, 100, cust.CustomerTotalDueBDT)
	assert.Equal(t, expiry, *cust.CustomerExpiryDate)

	stored := st.requests[req.PackageChangeRequestID]
	assert.Equal(t, model.PackageChangeStatusRejected, stored.PackageChangeRequestStatus)
	assert.Equal(t, &notes, stored.PackageChangeRequestAdminNotes)

	// rejected request frees the pending slot
	_, _, err = svc.Submit(SubmitInput{
		CustomerID:         custID,
		CurrentPackageID:   oldPkg,
		RequestedPackageID: newPkg,
		Password:           portalPassword,
	}, today)
	assert.NoError(t, err)
}

func TestDecideUnknownRequest(t *testing.T) {
	st := newFakeStore()
	svc := NewSettlementService(st)
	err := svc.Decide(DecideInput{RequestID: uuid.New(), Approve: true}, time.Now())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
