// file: internals/features/billing/generator/service/store_gorm.go
package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	recordModel "netbill_backend/internals/features/billing/records/model"
	customerModel "netbill_backend/internals/features/customers/customers/model"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DueCustomers(today time.Time) ([]DueCustomer, error) {
	var rows []DueCustomer
	err := s.db.
		Table("customers").
		Select(`customers.customer_id        AS customer_id,
			customers.customer_expiry_date   AS expiry_date,
			customers.customer_total_due_bdt AS total_due_bdt,
			customers.customer_status        AS status,
			customers.customer_package_id    AS package_id,
			COALESCE(packages.package_monthly_price_bdt, 0) AS monthly_price_bdt`).
		Joins("LEFT JOIN packages ON packages.package_id = customers.customer_package_id").
		Where("customers.customer_expiry_date IS NOT NULL").
		Where("customers.customer_expiry_date <= ?", truncateToDay(today)).
		Where("customers.customer_status <> ?", customerModel.CustomerStatusSuspended).
		Where("customers.customer_deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore) HasBillingRecord(customerID uuid.UUID, billingDate time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&recordModel.BillingRecordModel{}).
		Where("billing_record_customer_id = ? AND billing_record_billing_date = ?", customerID, billingDate).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) CreateBillingRecord(rec *recordModel.BillingRecordModel) error {
	return s.db.Create(rec).Error
}

func (s *gormStore) IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func (s *gormStore) AddChargeAndExpire(customerID uuid.UUID, amountBDT int) error {
	return s.db.Exec(`
		UPDATE customers
		SET customer_total_due_bdt = customer_total_due_bdt + ?,
		    customer_status = ?,
		    customer_updated_at = now()
		WHERE customer_id = ? AND customer_deleted_at IS NULL
	`, amountBDT, customerModel.CustomerStatusExpired, customerID).Error
}

func (s *gormStore) MarkExpired(customerID uuid.UUID) error {
	return s.db.Exec(`
		UPDATE customers
		SET customer_status = ?,
		    customer_updated_at = now()
		WHERE customer_id = ? AND customer_deleted_at IS NULL
	`, customerModel.CustomerStatusExpired, customerID).Error
}
