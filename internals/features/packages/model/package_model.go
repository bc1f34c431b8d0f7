// file: internals/features/packages/model/package_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL - internet packages (reference data, read-only to billing)
// =========================================================

type PackageModel struct {
	// PK
	PackageID uuid.UUID `gorm:"column:package_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"package_id"`

	PackageName string `gorm:"column:package_name;type:varchar(80);not null;uniqueIndex:uniq_package_name" json:"package_name"`

	// Amounts in whole BDT
	PackageMonthlyPriceBDT int `gorm:"column:package_monthly_price_bdt;not null;check:package_monthly_price_bdt>=0" json:"package_monthly_price_bdt"`

	// Cycle length in days (typically 30)
	PackageValidityDays int `gorm:"column:package_validity_days;not null;default:30;check:package_validity_days>0" json:"package_validity_days"`

	PackageSpeedMbps int  `gorm:"column:package_speed_mbps;not null;check:package_speed_mbps>0" json:"package_speed_mbps"`
	PackageIsActive  bool `gorm:"column:package_is_active;not null;default:true" json:"package_is_active"`

	PackageDescription *string `gorm:"column:package_description;type:text" json:"package_description,omitempty"`

	// Timestamps
	PackageCreatedAt time.Time      `gorm:"column:package_created_at;not null;default:now()" json:"package_created_at"`
	PackageUpdatedAt time.Time      `gorm:"column:package_updated_at;not null;default:now()" json:"package_updated_at"`
	PackageDeletedAt gorm.DeletedAt `gorm:"column:package_deleted_at;index" json:"-"`
}

// TableName overrides the table name used by PackageModel to `packages`
func (PackageModel) TableName() string {
	return "packages"
}

func (m *PackageModel) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.PackageCreatedAt.IsZero() {
		m.PackageCreatedAt = now
	}
	m.PackageUpdatedAt = now
	return nil
}

func (m *PackageModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PackageUpdatedAt = time.Now()
	return nil
}
