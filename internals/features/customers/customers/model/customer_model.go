// file: internals/features/customers/customers/model/customer_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM - customer lifecycle status
// =========================================================

type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusExpiring  CustomerStatus = "expiring"
	CustomerStatusExpired   CustomerStatus = "expired"
	CustomerStatusSuspended CustomerStatus = "suspended"
)

// =========================================================
// MODEL
// =========================================================

// CustomerModel is the subscriber record. customer_status is a persisted
// cache of the derivation in billing/records/service; the stored value is
// advisory and must only be written through that derivation.
type CustomerModel struct {
	// PK
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"customer_id"`

	// Short human-facing code, e.g. NB-00421
	CustomerCode string `gorm:"column:customer_code;type:varchar(20);not null;uniqueIndex:uniq_customer_code" json:"customer_code"`

	CustomerName    string  `gorm:"column:customer_name;type:varchar(120);not null" json:"customer_name"`
	CustomerPhone   string  `gorm:"column:customer_phone;type:varchar(20);not null;uniqueIndex:uniq_customer_phone" json:"customer_phone"`
	CustomerAddress *string `gorm:"column:customer_address;type:text" json:"customer_address,omitempty"`

	// Lifecycle
	CustomerStatus CustomerStatus `gorm:"column:customer_status;type:varchar(20);not null;default:'active';index:ix_customer_status" json:"customer_status"`

	// Next billing event (date, time-of-day ignored)
	CustomerExpiryDate *time.Time `gorm:"column:customer_expiry_date;type:date;index:ix_customer_expiry" json:"customer_expiry_date,omitempty"`

	// Accumulated unpaid balance, whole BDT, never negative (DB check)
	CustomerTotalDueBDT int `gorm:"column:customer_total_due_bdt;not null;default:0;check:customer_total_due_bdt>=0" json:"customer_total_due_bdt"`

	// FK → packages(package_id), nullable until a package is assigned
	CustomerPackageID *uuid.UUID `gorm:"column:customer_package_id;type:uuid;index" json:"customer_package_id,omitempty"`

	CustomerBillingStartDate *time.Time `gorm:"column:customer_billing_start_date;type:date" json:"customer_billing_start_date,omitempty"`

	// bcrypt hash for the self-service portal, never serialized
	CustomerPortalPasswordHash string `gorm:"column:customer_portal_password_hash;type:varchar(100);not null" json:"-"`

	// Timestamps
	CustomerCreatedAt time.Time      `gorm:"column:customer_created_at;not null;default:now();index:ix_customer_created_at" json:"customer_created_at"`
	CustomerUpdatedAt time.Time      `gorm:"column:customer_updated_at;not null;default:now()" json:"customer_updated_at"`
	CustomerDeletedAt gorm.DeletedAt `gorm:"column:customer_deleted_at;index" json:"-"`
}

// TableName overrides the table name used by CustomerModel to `customers`
func (CustomerModel) TableName() string {
	return "customers"
}

// =========================================================
// HOOKS - explicit timestamps
// =========================================================

func (m *CustomerModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.CustomerCreatedAt.IsZero() {
		m.CustomerCreatedAt = now
	}
	m.CustomerUpdatedAt = now
	return nil
}

func (m *CustomerModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.CustomerUpdatedAt = time.Now()
	return nil
}
