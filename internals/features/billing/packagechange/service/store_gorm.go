// file: internals/features/billing/packagechange/service/store_gorm.go
package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"netbill_backend/internals/features/billing/packagechange/model"
	customerModel "netbill_backend/internals/features/customers/customers/model"
	packageModel "netbill_backend/internals/features/packages/model"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transact(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) CustomerByID(id uuid.UUID) (*customerModel.CustomerModel, error) {
	var cust customerModel.CustomerModel
	if err := s.db.Where("customer_id = ?", id).First(&cust).Error; err != nil {
		return nil, err
	}
	return &cust, nil
}

func (s *gormStore) PackageByID(id uuid.UUID) (*packageModel.PackageModel, error) {
	var pkg packageModel.PackageModel
	if err := s.db.Where("package_id = ?", id).First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *gormStore) HasPendingRequest(customerID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&model.PackageChangeRequestModel{}).
		Where("package_change_request_customer_id = ? AND package_change_request_status = ?",
			customerID, model.PackageChangeStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) CreateRequest(req *model.PackageChangeRequestModel) error {
	return s.db.Create(req).Error
}

func (s *gormStore) IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func (s *gormStore) RequestByIDForUpdate(id uuid.UUID) (*model.PackageChangeRequestModel, error) {
	var req model.PackageChangeRequestModel
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("package_change_request_id = ?", id).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *gormStore) UpdateRequestDecision(id uuid.UUID, status model.PackageChangeStatus, adminNotes *string, decidedBy *uuid.UUID, decidedAt time.Time) error {
	return s.db.Model(&model.PackageChangeRequestModel{}).
		Where("package_change_request_id = ? AND package_change_request_status = ?",
			id, model.PackageChangeStatusPending).
		Updates(map[string]interface{}{
			"package_change_request_status":      status,
			"package_change_request_admin_notes": adminNotes,
			"package_change_request_decided_by":  decidedBy,
			"package_change_request_decided_at":  decidedAt,
			"package_change_request_updated_at":  time.Now(),
		}).Error
}

func (s *gormStore) UpdateCustomerPlan(customerID, packageID uuid.UUID, expiry time.Time, totalDueBDT int, status customerModel.CustomerStatus) error {
	return s.db.Model(&customerModel.CustomerModel{}).
		Where("customer_id = ?", customerID).
		Updates(map[string]interface{}{
			"customer_package_id":    packageID,
			"customer_expiry_date":   expiry,
			"customer_total_due_bdt": totalDueBDT,
			"customer_status":        status,
			"customer_updated_at":    time.Now(),
		}).Error
}
