package service

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordModel "netbill_backend/internals/features/billing/records/model"
	customerModel "netbill_backend/internals/features/customers/customers/model"
	"netbill_backend/internals/features/customers/payments/model"
	packageModel "netbill_backend/internals/features/packages/model"
)

type fakeStore struct {
	customers map[uuid.UUID]*customerModel.CustomerModel
	packages  map[uuid.UUID]*packageModel.PackageModel
	records   map[uuid.UUID]*recordModel.BillingRecordModel
	payments  []*model.PaymentModel
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[uuid.UUID]*customerModel.CustomerModel{},
		packages:  map[uuid.UUID]*packageModel.PackageModel{},
		records:   map[uuid.UUID]*recordModel.BillingRecordModel{},
	}
}

func (f *fakeStore) Transact(fn func(tx Store) error) error { return fn(f) }

func (f *fakeStore) CustomerByIDForUpdate(id uuid.UUID) (*customerModel.CustomerModel, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) PackageByID(id uuid.UUID) (*packageModel.PackageModel, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (f *fakeStore) CreatePayment(p *model.PaymentModel) error {
	p.PaymentID = uuid.New()
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeStore) UpdateCustomerAfterPayment(customerID uuid.UUID, totalDueBDT int, expiry *time.Time, status customerModel.CustomerStatus) error {
	c, ok := f.customers[customerID]
	if !ok {
		return errors.New("record not found")
	}
	c.CustomerTotalDueBDT = totalDueBDT
	c.CustomerExpiryDate = expiry
	c.CustomerStatus = status
	return nil
}

func (f *fakeStore) OpenBillingRecords(customerID uuid.UUID) ([]recordModel.BillingRecordModel, error) {
	var out []recordModel.BillingRecordModel
	for _, r := range f.records {
		if r.BillingRecordCustomerID == customerID &&
			r.BillingRecordStatus != recordModel.BillingRecordStatusPaid {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BillingRecordBillingDate.Before(out[j].BillingRecordBillingDate)
	})
	return out, nil
}

func (f *fakeStore) UpdateBillingRecordPayment(id uuid.UUID, amountPaidBDT int, status recordModel.BillingRecordStatus) error {
	r, ok := f.records[id]
	if !ok {
		return errors.New("record not found")
	}
	r.BillingRecordAmountPaidBDT = amountPaidBDT
	r.BillingRecordStatus = status
	return nil
}

/* ======================= fixtures ======================= */

func (f *fakeStore) addPackage(priceBDT, validityDays int) uuid.UUID {
	id := uuid.New()
	f.packages[id] = &packageModel.PackageModel{
		PackageID:              id,
		PackageMonthlyPriceBDT: priceBDT,
		PackageValidityDays:    validityDays,
	}
	return id
}

func (f *fakeStore) addCustomer(pkgID uuid.UUID, expiry *time.Time, dueBDT int, status customerModel.CustomerStatus) uuid.UUID {
	id := uuid.New()
	f.customers[id] = &customerModel.CustomerModel{
		CustomerID:          id,
		CustomerStatus:      status,
		CustomerExpiryDate:  expiry,
		CustomerTotalDueBDT: dueBDT,
		CustomerPackageID:   &pkgID,
	}
	return id
}

func (f *fakeStore) addRecord(custID uuid.UUID, billingDate time.Time, amountBDT, paidBDT int, status recordModel.BillingRecordStatus) uuid.UUID {
	id := uuid.New()
	f.records[id] = &recordModel.BillingRecordModel{
		BillingRecordID:            id,
		BillingRecordCustomerID:    custID,
		BillingRecordBillingDate:   billingDate,
		BillingRecordAmountBDT:     amountBDT,
		BillingRecordAmountPaidBDT: paidBDT,
		BillingRecordStatus:        status,
	}
	return id
}

/* ======================= tests ======================= */

func TestRecordFullPaymentClearsAndExtends(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) // overdue
	pkgID := st.addPackage(1000, 30)
	custID := st.addCustomer(pkgID, &expiry, 1000, customerModel.CustomerStatusExpired)
	recID := st.addRecord(custID, expiry, 1000, 0, recordModel.BillingRecordStatusUnpaid)

	svc := NewPaymentService(st)
	res, err := svc.Record(RecordInput{
		CustomerID: custID,
		AmountBDT:  1000,
		Method:     model.PaymentMethodBkash,
	}, today)
	require.NoError(t, err)

	assert.Equal(t, 0, res.NewTotalDueBDT)
	assert.True(t, res.ExpiryExtended)
	// expiry is in the past, so the new cycle restarts from today
	assert.Equal(t, today.AddDate(0, 0, 30), *res.NewExpiryDate)
	assert.Equal(t, customerModel.CustomerStatusActive, res.NewStatus)
	assert.Equal(t, 1, res.RecordsSettled)

	assert.Equal(t, recordModel.BillingRecordStatusPaid, st.records[recID].BillingRecordStatus)
	assert.Equal(t, 1000, st.records[recID].BillingRecordAmountPaidBDT)

	require.Len(t, st.payments, 1)
	assert.Equal(t, 0, st.payments[0].PaymentRemainingDueBDT)
}

func TestRecordPartialPaymentKeepsExpiry(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	pkgID := st.addPackage(1000, 30)
	custID := st.addCustomer(pkgID, &expiry, 1000, customerModel.CustomerStatusExpired)
	recID := st.addRecord(custID, expiry, 1000, 0, recordModel.BillingRecordStatusUnpaid)

	svc := NewPaymentService(st)
	res, err := svc.Record(RecordInput{
		CustomerID: custID,
		AmountBDT:  400,
		Method:     model.PaymentMethodCash,
	}, today)
	require.NoError(t, err)

	assert.Equal(t, 600, res.NewTotalDueBDT)
	assert.False(t, res.ExpiryExtended)
	assert.Equal(t, expiry, *res.NewExpiryDate)
	// still overdue, partial payment does not restore service
	assert.Equal(t, customerModel.CustomerStatusExpired, res.NewStatus)

	assert.Equal(t, recordModel.BillingRecordStatusPartial, st.records[recID].BillingRecordStatus)
	assert.Equal(t, 400, st.records[recID].BillingRecordAmountPaidBDT)
	assert.Equal(t, 600, st.payments[0].PaymentRemainingDueBDT)
}

func TestRecordSettlesOldestCycleFirst(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	pkgID := st.addPackage(1000, 30)
	custID := st.addCustomer(pkgID, &expiry, 2000, customerModel.CustomerStatusExpired)
	mayID := st.addRecord(custID, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), 1000, 0, recordModel.BillingRecordStatusUnpaid)
	junID := st.addRecord(custID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 1000, 0, recordModel.BillingRecordStatusUnpaid)

	svc := NewPaymentService(st)
	res, err := svc.Record(RecordInput{
		CustomerID: custID,
		AmountBDT:  1500,
		Method:     model.PaymentMethodBankTransfer,
	}, today)
	require.NoError(t, err)

	assert.Equal(t, 500, res.NewTotalDueBDT)
	assert.Equal(t, 2, res.RecordsSettled)
	// a full monthly fee buys a cycle even with older dues outstanding
	assert.True(t, res.ExpiryExtended)
	assert.Equal(t, today.AddDate(0, 0, 30), *res.NewExpiryDate)
	assert.Equal(t, recordModel.BillingRecordStatusPaid, st.records[mayID].BillingRecordStatus)
	assert.Equal(t, recordModel.BillingRecordStatusPartial, st.records[junID].BillingRecordStatus)
	assert.Equal(t, 500, st.records[junID].BillingRecordAmountPaidBDT)
}

func TestRecordOverpaymentClampsToZero(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	pkgID := st.addPackage(1000, 30)
	custID := st.addCustomer(pkgID, &expiry, 800, customerModel.CustomerStatusExpired)
	st.addRecord(custID, expiry, 1000, 200, recordModel.BillingRecordStatusPartial)

	svc := NewPaymentService(st)
	res, err := svc.Record(RecordInput{
		CustomerID: custID,
		AmountBDT:  1000,
		Method:     model.PaymentMethodBkash,
	}, today)
	require.NoError(t, err)

	assert.Equal(t, 0, res.NewTotalDueBDT)
	assert.Equal(t, 0, st.customers[custID].CustomerTotalDueBDT)
}

func TestRecordDoesNotLiftSuspension(t *testing.T) {
	st := newFakeStore()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	expiry := today.AddDate(0, 0, 10)
	pkgID := st.addPackage(1000, 30)
	custID := st.addCustomer(pkgID, &expiry, 500, customerModel.CustomerStatusSuspended)

	svc := NewPaymentService(st)
	res, err := svc.Record(RecordInput{
		CustomerID: custID,
		AmountBDT:  500,
		Method:     model.PaymentMethodCash,
	}, today)
	require.NoError(t, err)

	assert.Equal(t, 0, res.NewTotalDueBDT)
	assert.Equal(t, customerModel.CustomerStatusSuspended, res.NewStatus)
}

func TestRecordRejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(newFakeStore())
	_, err := svc.Record(RecordInput{CustomerID: uuid.New(), AmountBDT: 0}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Record(RecordInput{CustomerID: uuid.New(), AmountBDT: -50}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRecordUnknownCustomer(t *testing.T) {
	svc := NewPaymentService(newFakeStore())
	_, err := svc.Record(RecordInput{CustomerID: uuid.New(), AmountBDT: 100}, time.Now())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
