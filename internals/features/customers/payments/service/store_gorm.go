// file: internals/features/customers/payments/service/store_gorm.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	recordModel "netbill_backend/internals/features/billing/records/model"
	customerModel "netbill_backend/internals/features/customers/customers/model"
	"netbill_backend/internals/features/customers/payments/model"
	packageModel "netbill_backend/internals/features/packages/model"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) Transact(fn func(tx Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (g *gormStore) CustomerByIDForUpdate(id uuid.UUID) (*customerModel.CustomerModel, error) {
	var cust customerModel.CustomerModel
	err := g.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cust, "customer_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (g *gormStore) PackageByID(id uuid.UUID) (*packageModel.PackageModel, error) {
	var pkg packageModel.PackageModel
	if err := g.db.First(&pkg, "package_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (g *gormStore) CreatePayment(p *model.PaymentModel) error {
	return g.db.Create(p).Error
}

func (g *gormStore) UpdateCustomerAfterPayment(customerID uuid.UUID, totalDueBDT int, expiry *time.Time, status customerModel.CustomerStatus) error {
	return g.db.Model(&customerModel.CustomerModel{}).
		Where("customer_id = ?", customerID).
		Updates(map[string]any{
			"customer_total_due_bdt": totalDueBDT,
			"customer_expiry_date":   expiry,
			"customer_status":        status,
		}).Error
}

func (g *gormStore) OpenBillingRecords(customerID uuid.UUID) ([]recordModel.BillingRecordModel, error) {
	var recs []recordModel.BillingRecordModel
	err := g.db.
		Where("billing_record_customer_id = ? AND billing_record_status IN ?",
			customerID, []recordModel.BillingRecordStatus{
				recordModel.BillingRecordStatusUnpaid,
				recordModel.BillingRecordStatusPartial,
			}).
		Order("billing_record_billing_date ASC").
		Find(&recs).Error
	return recs, err
}

func (g *gormStore) UpdateBillingRecordPayment(id uuid.UUID, amountPaidBDT int, status recordModel.BillingRecordStatus) error {
	return g.db.Model(&recordModel.BillingRecordModel{}).
		Where("billing_record_id = ?", id).
		Updates(map[string]any{
			"billing_record_amount_paid_bdt": amountPaidBDT,
			"billing_record_status":          status,
		}).Error
}
