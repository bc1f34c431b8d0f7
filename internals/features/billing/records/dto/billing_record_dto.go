// file: internals/features/billing/records/dto/billing_record_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"netbill_backend/internals/features/billing/records/model"
)

type BillingRecordResponse struct {
	BillingRecordID uuid.UUID `json:"billing_record_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	BillingDate     time.Time `json:"billing_date"`
	AmountBDT       int       `json:"amount_bdt"`
	AmountPaidBDT   int       `json:"amount_paid_bdt"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToBillingRecordResponse(m *model.BillingRecordModel) BillingRecordResponse {
	return BillingRecordResponse{
		BillingRecordID: m.BillingRecordID,
		CustomerID:      m.BillingRecordCustomerID,
		BillingDate:     m.BillingRecordBillingDate,
		AmountBDT:       m.BillingRecordAmountBDT,
		AmountPaidBDT:   m.BillingRecordAmountPaidBDT,
		Status:          string(m.BillingRecordStatus),
		CreatedAt:       m.BillingRecordCreatedAt,
	}
}

func ToBillingRecordResponses(items []model.BillingRecordModel) []BillingRecordResponse {
	out := make([]BillingRecordResponse, 0, len(items))
	for i := range items {
		out = append(out, ToBillingRecordResponse(&items[i]))
	}
	return out
}
