// file: internals/features/customers/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"netbill_backend/internals/features/customers/payments/model"
)

/* ======================= REQUEST ======================= */

type RecordPaymentRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	AmountBDT  int       `json:"amount_bdt" validate:"required,gt=0"`
	Method     string    `json:"method" validate:"required,oneof=cash bkash bank_transfer"`
	Reference  *string   `json:"reference" validate:"omitempty,max=80"`
}

/* ======================= RESPONSE ======================= */

type PaymentResponse struct {
	PaymentID       uuid.UUID  `json:"payment_id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	AmountBDT       int        `json:"amount_bdt"`
	Method          string     `json:"method"`
	Reference       *string    `json:"reference,omitempty"`
	RemainingDueBDT int        `json:"remaining_due_bdt"`
	ReceivedBy      *uuid.UUID `json:"received_by,omitempty"`
	PaidAt          time.Time  `json:"paid_at"`
}

func ToPaymentResponse(m *model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:       m.PaymentID,
		CustomerID:      m.PaymentCustomerID,
		AmountBDT:       m.PaymentAmountBDT,
		Method:          string(m.PaymentMethod),
		Reference:       m.PaymentReference,
		RemainingDueBDT: m.PaymentRemainingDueBDT,
		ReceivedBy:      m.PaymentReceivedBy,
		PaidAt:          m.PaymentPaidAt,
	}
}

func ToPaymentResponses(items []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for i := range items {
		out = append(out, ToPaymentResponse(&items[i]))
	}
	return out
}

// RecordPaymentResult echoes the post-payment account state so the operator
// screen can refresh without a second call.
type RecordPaymentResult struct {
	Payment        PaymentResponse `json:"payment"`
	NewTotalDueBDT int             `json:"new_total_due_bdt"`
	NewExpiryDate  *time.Time      `json:"new_expiry_date,omitempty"`
	NewStatus      string          `json:"new_status"`
	ExpiryExtended bool            `json:"expiry_extended"`
}
