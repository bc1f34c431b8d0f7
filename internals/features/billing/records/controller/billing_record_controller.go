// file: internals/features/billing/records/controller/billing_record_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"netbill_backend/internals/features/billing/records/dto"
	"netbill_backend/internals/features/billing/records/model"
	helper "netbill_backend/internals/helpers"
)

type BillingRecordController struct {
	DB *gorm.DB
}

func NewBillingRecordController(db *gorm.DB) *BillingRecordController {
	return &BillingRecordController{DB: db}
}

// List handles GET /api/admin/billing-records with optional ?customer_id=
// and ?status= filters, newest cycle first.
func (ctrl *BillingRecordController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.BillingRecordModel{})
	if rawID := c.Query("customer_id"); rawID != "" {
		custID, err := uuid.Parse(rawID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid customer_id")
		}
		q = q.Where("billing_record_customer_id = ?", custID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("billing_record_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count billing records")
	}

	var items []model.BillingRecordModel
	if err := q.Order("billing_record_billing_date DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch billing records")
	}

	return helper.JsonList(c, "Billing records fetched", dto.ToBillingRecordResponses(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *BillingRecordController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid billing record ID")
	}

	var item model.BillingRecordModel
	if err := ctrl.DB.First(&item, "billing_record_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Billing record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch billing record")
	}
	return helper.JsonOK(c, "Billing record fetched", dto.ToBillingRecordResponse(&item))
}
