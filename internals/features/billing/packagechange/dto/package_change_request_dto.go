// file: internals/features/billing/packagechange/dto/package_change_request_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"netbill_backend/internals/features/billing/packagechange/model"
)

/* ======================= REQUEST ======================= */

// SubmitPackageChangeRequest is the portal payload. The customer proves
// ownership with the portal password since portal sessions carry no JWT.
type SubmitPackageChangeRequest struct {
	CustomerID         uuid.UUID `json:"customer_id" validate:"required"`
	CurrentPackageID   uuid.UUID `json:"current_package_id" validate:"required"`
	RequestedPackageID uuid.UUID `json:"requested_package_id" validate:"required"`
	Password           string    `json:"password" validate:"required,min=6"`
}

type DecidePackageChangeRequest struct {
	RequestID  uuid.UUID `json:"request_id" validate:"required"`
	Action     string    `json:"action" validate:"required,oneof=approve reject"`
	AdminNotes *string   `json:"admin_notes" validate:"omitempty,max=500"`
}

/* ======================= RESPONSE ======================= */

type PackageChangeRequestResponse struct {
	RequestID          uuid.UUID  `json:"request_id"`
	CustomerID         uuid.UUID  `json:"customer_id"`
	CurrentPackageID   uuid.UUID  `json:"current_package_id"`
	RequestedPackageID uuid.UUID  `json:"requested_package_id"`
	ProratedCreditBDT  int        `json:"prorated_credit_bdt"`
	ProratedChargeBDT  int        `json:"prorated_charge_bdt"`
	NetChargeBDT       int        `json:"net_charge_bdt"`
	Status             string     `json:"status"`
	AdminNotes         *string    `json:"admin_notes,omitempty"`
	DecidedBy          *uuid.UUID `json:"decided_by,omitempty"`
	DecidedAt          *time.Time `json:"decided_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToPackageChangeRequestResponse(m *model.PackageChangeRequestModel) PackageChangeRequestResponse {
	return PackageChangeRequestResponse{
		RequestID:          m.PackageChangeRequestID,
		CustomerID:         m.PackageChangeRequestCustomerID,
		CurrentPackageID:   m.PackageChangeRequestCurrentPackageID,
		RequestedPackageID: m.PackageChangeRequestRequestedPackageID,
		ProratedCreditBDT:  m.PackageChangeRequestProratedCreditBDT,
		ProratedChargeBDT:  m.PackageChangeRequestProratedChargeBDT,
		NetChargeBDT:       m.PackageChangeRequestProratedChargeBDT - m.PackageChangeRequestProratedCreditBDT,
		Status:             string(m.PackageChangeRequestStatus),
		AdminNotes:         m.PackageChangeRequestAdminNotes,
		DecidedBy:          m.PackageChangeRequestDecidedBy,
		DecidedAt:          m.PackageChangeRequestDecidedAt,
		CreatedAt:          m.PackageChangeRequestCreatedAt,
	}
}

func ToPackageChangeRequestResponses(items []model.PackageChangeRequestModel) []PackageChangeRequestResponse {
	out := make([]PackageChangeRequestResponse, 0, len(items))
	for i := range items {
		out = append(out, ToPackageChangeRequestResponse(&items[i]))
	}
	return out
}
