// file: internals/features/billing/packagechange/controller/package_change_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"netbill_backend/internals/features/billing/packagechange/dto"
	"netbill_backend/internals/features/billing/packagechange/model"
	"netbill_backend/internals/features/billing/packagechange/service"
	helper "netbill_backend/internals/helpers"
)

var validate = validator.New()

type PackageChangeController struct {
	DB  *gorm.DB
	svc *service.SettlementService
}

func NewPackageChangeController(db *gorm.DB) *PackageChangeController {
	return &PackageChangeController{
		DB:  db,
		svc: service.NewSettlementService(service.NewGormStore(db)),
	}
}

/* ======================= PORTAL: SUBMIT ======================= */

// Submit handles POST /api/portal/package-change.
func (ctrl *PackageChangeController) Submit(c *fiber.Ctx) error {
	var body dto.SubmitPackageChangeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	req, pr, err := ctrl.svc.Submit(service.SubmitInput{
		CustomerID:         body.CustomerID,
		CurrentPackageID:   body.CurrentPackageID,
		RequestedPackageID: body.RequestedPackageID,
		Password:           body.Password,
	}, helper.TodayDhaka())
	if err != nil {
		return settlementError(c, err)
	}

	log.Printf("[INFO] package change submitted customer=%s request=%s net=%d",
		req.PackageChangeRequestCustomerID, req.PackageChangeRequestID, pr.NetChargeBDT)

	resp := dto.ToPackageChangeRequestResponse(req)
	return helper.JsonCreated(c, "Package change request submitted", resp)
}

/* ======================= ADMIN: DECIDE ======================= */

// Decide handles POST /api/admin/package-change/decide.
func (ctrl *PackageChangeController) Decide(c *fiber.Ctx) error {
	var body dto.DecidePackageChangeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var decidedBy *uuid.UUID
	if adminID, err := helper.GetUserIDFromToken(c); err == nil {
		decidedBy = &adminID
	}

	err := ctrl.svc.Decide(service.DecideInput{
		RequestID:  body.RequestID,
		Approve:    body.Action == "approve",
		AdminNotes: body.AdminNotes,
		DecidedBy:  decidedBy,
	}, helper.TodayDhaka())
	if err != nil {
		return settlementError(c, err)
	}

	var out model.PackageChangeRequestModel
	if err := ctrl.DB.First(&out, "package_change_request_id = ?", body.RequestID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load decided request")
	}
	return helper.JsonUpdated(c, "Package change request decided", dto.ToPackageChangeRequestResponse(&out))
}

/* ======================= ADMIN: READ ======================= */

// List handles GET /api/admin/package-change with optional ?status= and
// ?customer_id= filters.
func (ctrl *PackageChangeController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PackageChangeRequestModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("package_change_request_status = ?", status)
	}
	if rawID := c.Query("customer_id"); rawID != "" {
		custID, err := uuid.Parse(rawID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid customer_id")
		}
		q = q.Where("package_change_request_customer_id = ?", custID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count requests")
	}

	var items []model.PackageChangeRequestModel
	if err := q.Order("package_change_request_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	return helper.JsonList(c, "Package change requests fetched",
		dto.ToPackageChangeRequestResponses(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *PackageChangeController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var item model.PackageChangeRequestModel
	if err := ctrl.DB.First(&item, "package_change_request_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Package change request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch request")
	}
	return helper.JsonOK(c, "Package change request fetched", dto.ToPackageChangeRequestResponse(&item))
}

/* ======================= ERROR MAPPING ======================= */

func settlementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrPackageNotFound),
		errors.Is(err, service.ErrRequestNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWrongPassword):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPendingExists),
		errors.Is(err, service.ErrNotPending):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPackageMismatch),
		errors.Is(err, service.ErrSamePackage):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] package change settlement failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process package change")
	}
}
