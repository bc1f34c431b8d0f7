// file: internals/features/packages/dto/package_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"netbill_backend/internals/features/packages/model"
)

/* ======================= REQUEST ======================= */

type CreatePackageRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	MonthlyPriceBDT int     `json:"monthly_price_bdt" validate:"required,gt=0"`
	ValidityDays    int     `json:"validity_days" validate:"omitempty,gt=0"`
	SpeedMbps       int     `json:"speed_mbps" validate:"required,gt=0"`
	Description     *string `json:"description" validate:"omitempty,max=255"`
}

type UpdatePackageRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	MonthlyPriceBDT *int    `json:"monthly_price_bdt" validate:"omitempty,gt=0"`
	ValidityDays    *int    `json:"validity_days" validate:"omitempty,gt=0"`
	SpeedMbps       *int    `json:"speed_mbps" validate:"omitempty,gt=0"`
	Description     *string `json:"description" validate:"omitempty,max=255"`
	IsActive        *bool   `json:"is_active"`
}

/* ======================= RESPONSE ======================= */

type PackageResponse struct {
	PackageID       uuid.UUID `json:"package_id"`
	Name            string    `json:"name"`
	MonthlyPriceBDT int       `json:"monthly_price_bdt"`
	ValidityDays    int       `json:"validity_days"`
	SpeedMbps       int       `json:"speed_mbps"`
	IsActive        bool      `json:"is_active"`
	Description     *string   `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToPackageResponse(m *model.PackageModel) PackageResponse {
	return PackageResponse{
		PackageID:       m.PackageID,
		Name:            m.PackageName,
		MonthlyPriceBDT: m.PackageMonthlyPriceBDT,
		ValidityDays:    m.PackageValidityDays,
		SpeedMbps:       m.PackageSpeedMbps,
		IsActive:        m.PackageIsActive,
		Description:     m.PackageDescription,
		CreatedAt:       m.PackageCreatedAt,
	}
}

func ToPackageResponses(items []model.PackageModel) []PackageResponse {
	out := make([]PackageResponse, 0, len(items))
	for i := range items {
		out = append(out, ToPackageResponse(&items[i]))
	}
	return out
}
