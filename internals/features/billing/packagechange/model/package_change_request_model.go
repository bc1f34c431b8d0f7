// file: internals/features/billing/packagechange/model/package_change_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM - request lifecycle
// =========================================================

type PackageChangeStatus string

const (
	PackageChangeStatusPending  PackageChangeStatus = "pending"
	PackageChangeStatusApproved PackageChangeStatus = "approved"
	PackageChangeStatusRejected PackageChangeStatus = "rejected"
)

// =========================================================
// MODEL
//
// At most one pending request per customer, enforced by a partial
// unique index in the store:
//
//	CREATE UNIQUE INDEX uniq_pending_change_per_customer
//	  ON package_change_requests (package_change_request_customer_id)
//	  WHERE package_change_request_status = 'pending'
//	    AND package_change_request_deleted_at IS NULL;
//
// The application pre-check only exists for the friendly message;
// the index is authoritative under concurrency.
// =========================================================

type PackageChangeRequestModel struct {
	// PK
	PackageChangeRequestID uuid.UUID `gorm:"column:package_change_request_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"package_change_request_id"`

	// FK → customers(customer_id)
	PackageChangeRequestCustomerID uuid.UUID `gorm:"column:package_change_request_customer_id;type:uuid;not null;index:ix_change_request_customer" json:"package_change_request_customer_id"`

	// FK → packages(package_id)
	PackageChangeRequestCurrentPackageID   uuid.UUID `gorm:"column:package_change_request_current_package_id;type:uuid;not null" json:"package_change_request_current_package_id"`
	PackageChangeRequestRequestedPackageID uuid.UUID `gorm:"column:package_change_request_requested_package_id;type:uuid;not null" json:"package_change_request_requested_package_id"`

	// Proration snapshot computed at submit time, whole BDT
	PackageChangeRequestProratedCreditBDT int `gorm:"column:package_change_request_prorated_credit_bdt;not null;default:0" json:"package_change_request_prorated_credit_bdt"`
	PackageChangeRequestProratedChargeBDT int `gorm:"column:package_change_request_prorated_charge_bdt;not null;default:0" json:"package_change_request_prorated_charge_bdt"`

	PackageChangeRequestStatus PackageChangeStatus `gorm:"column:package_change_request_status;type:varchar(20);not null;default:'pending';index:ix_change_request_status" json:"package_change_request_status"`

	PackageChangeRequestAdminNotes *string    `gorm:"column:package_change_request_admin_notes;type:text" json:"package_change_request_admin_notes,omitempty"`
	PackageChangeRequestDecidedBy  *uuid.UUID `gorm:"column:package_change_request_decided_by;type:uuid" json:"package_change_request_decided_by,omitempty"`
	PackageChangeRequestDecidedAt  *time.Time `gorm:"column:package_change_request_decided_at" json:"package_change_request_decided_at,omitempty"`

	// Timestamps
	PackageChangeRequestCreatedAt time.Time      `gorm:"column:package_change_request_created_at;not null;default:now()" json:"package_change_request_created_at"`
	PackageChangeRequestUpdatedAt time.Time      `gorm:"column:package_change_request_updated_at;not null;default:now()" json:"package_change_request_updated_at"`
	PackageChangeRequestDeletedAt gorm.DeletedAt `gorm:"column:package_change_request_deleted_at;index" json:"-"`
}

// TableName overrides the table name used by PackageChangeRequestModel
func (PackageChangeRequestModel) TableName() string {
	return "package_change_requests"
}

func (m *PackageChangeRequestModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.PackageChangeRequestCreatedAt.IsZero() {
		m.PackageChangeRequestCreatedAt = now
	}
	m.PackageChangeRequestUpdatedAt = now
	return nil
}

func (m *PackageChangeRequestModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PackageChangeRequestUpdatedAt = time.Now()
	return nil
}
