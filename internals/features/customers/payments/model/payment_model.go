// file: internals/features/customers/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM - payment method
// =========================================================

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBkash        PaymentMethod = "bkash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// =========================================================
// MODEL - immutable ledger entry, no update/delete endpoints
// =========================================================

type PaymentModel struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`

	// FK → customers(customer_id)
	PaymentCustomerID uuid.UUID `gorm:"column:payment_customer_id;type:uuid;not null;index:ix_payment_customer" json:"payment_customer_id"`

	PaymentAmountBDT int           `gorm:"column:payment_amount_bdt;not null;check:payment_amount_bdt>0" json:"payment_amount_bdt"`
	PaymentMethod    PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null;index:ix_payment_method" json:"payment_method"`

	// Gateway trx id / bank slip no, free-form
	PaymentReference *string `gorm:"column:payment_reference;type:varchar(80)" json:"payment_reference,omitempty"`

	// Due balance snapshot AFTER this payment was applied
	PaymentRemainingDueBDT int `gorm:"column:payment_remaining_due_bdt;not null;check:payment_remaining_due_bdt>=0" json:"payment_remaining_due_bdt"`

	// FK → users(user_id), the operator who recorded it
	PaymentReceivedBy *uuid.UUID `gorm:"column:payment_received_by;type:uuid;index" json:"payment_received_by,omitempty"`

	PaymentPaidAt time.Time `gorm:"column:payment_paid_at;not null;default:now();index:ix_payment_paid_at" json:"payment_paid_at"`

	// Timestamps
	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;not null;default:now()" json:"payment_created_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

// TableName overrides the table name used by PaymentModel to `payments`
func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.PaymentPaidAt.IsZero() {
		m.PaymentPaidAt = now
	}
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = now
	}
	return nil
}
