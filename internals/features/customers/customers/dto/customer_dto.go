// file: internals/features/customers/customers/dto/customer_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	recordService "netbill_backend/internals/features/billing/records/service"
	"netbill_backend/internals/features/customers/customers/model"
)

/* ======================= REQUEST ======================= */

type CreateCustomerRequest struct {
	CustomerCode     string     `json:"customer_code" validate:"required,max=30"`
	Name             string     `json:"name" validate:"required,max=100"`
	Phone            string     `json:"phone" validate:"required,max=20"`
	Address          *string    `json:"address" validate:"omitempty,max=255"`
	PackageID        *uuid.UUID `json:"package_id"`
	BillingStartDate *string    `json:"billing_start_date" validate:"omitempty,datetime=2006-01-02"`
	PortalPassword   string     `json:"portal_password" validate:"required,min=6"`
}

type UpdateCustomerRequest struct {
	Name           *string    `json:"name" validate:"omitempty,max=100"`
	Phone          *string    `json:"phone" validate:"omitempty,max=20"`
	Address        *string    `json:"address" validate:"omitempty,max=255"`
	PackageID      *uuid.UUID `json:"package_id"`
	PortalPassword *string    `json:"portal_password" validate:"omitempty,min=6"`
}

/* ======================= RESPONSE ======================= */

type BillingStatusResponse struct {
	Status           string `json:"status"`
	StatusLabel      string `json:"status_label"`
	DaysUntilBilling int    `json:"days_until_billing"`
	DisplayDueBDT    int    `json:"display_due_bdt"`
}

func ToBillingStatusResponse(r recordService.StatusResult) BillingStatusResponse {
	return BillingStatusResponse{
		Status:           string(r.Status),
		StatusLabel:      r.StatusLabel,
		DaysUntilBilling: r.DaysUntilBilling,
		DisplayDueBDT:    r.DisplayDueBDT,
	}
}

type CustomerResponse struct {
	CustomerID       uuid.UUID  `json:"customer_id"`
	CustomerCode     string     `json:"customer_code"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	Address          *string    `json:"address,omitempty"`
	Status           string     `json:"status"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	TotalDueBDT      int        `json:"total_due_bdt"`
	PackageID        *uuid.UUID `json:"package_id,omitempty"`
	BillingStartDate *time.Time `json:"billing_start_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	// Computed projection, never read back from storage.
	Billing *BillingStatusResponse `json:"billing,omitempty"`
}

func ToCustomerResponse(m *model.CustomerModel, billing *BillingStatusResponse) CustomerResponse {
	return CustomerResponse{
		CustomerID:       m.CustomerID,
		CustomerCode:     m.CustomerCode,
		Name:             m.CustomerName,
		Phone:            m.CustomerPhone,
		Address:          m.CustomerAddress,
		Status:           string(m.CustomerStatus),
		ExpiryDate:       m.CustomerExpiryDate,
		TotalDueBDT:      m.CustomerTotalDueBDT,
		PackageID:        m.CustomerPackageID,
		BillingStartDate: m.CustomerBillingStartDate,
		CreatedAt:        m.CustomerCreatedAt,
		Billing:          billing,
	}
}
