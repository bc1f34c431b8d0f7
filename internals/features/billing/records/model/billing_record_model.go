// file: internals/features/billing/records/model/billing_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM - billing record status
// =========================================================

type BillingRecordStatus string

const (
	BillingRecordStatusUnpaid  BillingRecordStatus = "unpaid"
	BillingRecordStatusPaid    BillingRecordStatus = "paid"
	BillingRecordStatusPartial BillingRecordStatus = "partial"
)

// =========================================================
// MODEL - one row per billing cycle fired for a customer.
// (customer_id, billing_date) is the idempotency key: the unique
// index makes double-billing on generator re-runs impossible.
// =========================================================

type BillingRecordModel struct {
	// PK
	BillingRecordID uuid.UUID `gorm:"column:billing_record_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"billing_record_id"`

	// FK → customers(customer_id)
	BillingRecordCustomerID uuid.UUID `gorm:"column:billing_record_customer_id;type:uuid;not null;index;uniqueIndex:uniq_customer_billing_date,priority:1" json:"billing_record_customer_id"`

	// The cycle date this row bills for (date, time-of-day ignored)
	BillingRecordBillingDate time.Time `gorm:"column:billing_record_billing_date;type:date;not null;uniqueIndex:uniq_customer_billing_date,priority:2" json:"billing_record_billing_date"`

	BillingRecordAmountBDT int `gorm:"column:billing_record_amount_bdt;not null;check:billing_record_amount_bdt>=0" json:"billing_record_amount_bdt"`

	BillingRecordStatus BillingRecordStatus `gorm:"column:billing_record_status;type:varchar(20);not null;default:'unpaid';index:ix_billing_record_status" json:"billing_record_status"`

	BillingRecordAmountPaidBDT int `gorm:"column:billing_record_amount_paid_bdt;not null;default:0;check:billing_record_amount_paid_bdt>=0" json:"billing_record_amount_paid_bdt"`

	// Timestamps
	BillingRecordCreatedAt time.Time      `gorm:"column:billing_record_created_at;not null;default:now()" json:"billing_record_created_at"`
	BillingRecordUpdatedAt time.Time      `gorm:"column:billing_record_updated_at;not null;default:now()" json:"billing_record_updated_at"`
	BillingRecordDeletedAt gorm.DeletedAt `gorm:"column:billing_record_deleted_at;index" json:"-"`
}

// TableName overrides the table name used by BillingRecordModel to `billing_records`
func (BillingRecordModel) TableName() string {
	return "billing_records"
}

func (m *BillingRecordModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.BillingRecordCreatedAt.IsZero() {
		m.BillingRecordCreatedAt = now
	}
	m.BillingRecordUpdatedAt = now
	return nil
}

func (m *BillingRecordModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.BillingRecordUpdatedAt = time.Now()
	return nil
}
