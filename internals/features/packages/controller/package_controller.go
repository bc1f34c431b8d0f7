// file: internals/features/packages/controller/package_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	customerModel "netbill_backend/internals/features/customers/customers/model"
	"netbill_backend/internals/features/packages/dto"
	"netbill_backend/internals/features/packages/model"
	helper "netbill_backend/internals/helpers"
)

var validate = validator.New()

type PackageController struct {
	DB *gorm.DB
}

func NewPackageController(db *gorm.DB) *PackageController {
	return &PackageController{DB: db}
}

/* ======================= CREATE ======================= */

func (ctrl *PackageController) Create(c *fiber.Ctx) error {
	var body dto.CreatePackageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	pkg := model.PackageModel{
		PackageName:            strings.TrimSpace(body.Name),
		PackageMonthlyPriceBDT: body.MonthlyPriceBDT,
		PackageValidityDays:    body.ValidityDays,
		PackageSpeedMbps:       body.SpeedMbps,
		PackageIsActive:        true,
		PackageDescription:     body.Description,
	}
	if pkg.PackageValidityDays == 0 {
		pkg.PackageValidityDays = 30
	}

	if err := ctrl.DB.Create(&pkg).Error; err != nil {
		if isDuplicate(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Package name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create package")
	}
	return helper.JsonCreated(c, "Package created", dto.ToPackageResponse(&pkg))
}

/* ======================= READ ======================= */

// List handles GET /api/admin/packages. ?active=true limits to packages
// offered to new subscribers.
func (ctrl *PackageController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PackageModel{})
	if c.Query("active") == "true" {
		q = q.Where("package_is_active = true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count packages")
	}

	var items []model.PackageModel
	if err := q.Order("package_monthly_price_bdt ASC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch packages")
	}

	return helper.JsonList(c, "Packages fetched", dto.ToPackageResponses(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *PackageController) GetByID(c *fiber.Ctx) error {
	pkg, err := ctrl.findPackage(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Package fetched", dto.ToPackageResponse(pkg))
}

/* ======================= UPDATE ======================= */

func (ctrl *PackageController) Update(c *fiber.Ctx) error {
	pkg, err := ctrl.findPackage(c)
	if err != nil {
		return err
	}

	var body dto.UpdatePackageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]any{}
	if body.Name != nil {
		updates["package_name"] = strings.TrimSpace(*body.Name)
	}
	if body.MonthlyPriceBDT != nil {
		// Price changes apply from the next cycle. Already-generated
		// billing records keep the amount they were billed at.
		updates["package_monthly_price_bdt"] = *body.MonthlyPriceBDT
	}
	if body.ValidityDays != nil {
		updates["package_validity_days"] = *body.ValidityDays
	}
	if body.SpeedMbps != nil {
		updates["package_speed_mbps"] = *body.SpeedMbps
	}
	if body.Description != nil {
		updates["package_description"] = *body.Description
	}
	if body.IsActive != nil {
		updates["package_is_active"] = *body.IsActive
	}

	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToPackageResponse(pkg))
	}

	if err := ctrl.DB.Model(pkg).Updates(updates).Error; err != nil {
		if isDuplicate(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Package name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update package")
	}
	return helper.JsonUpdated(c, "Package updated", dto.ToPackageResponse(pkg))
}

/* ======================= DELETE ======================= */

// Delete soft-deletes a package. Packages with subscribed customers can
// only be deactivated, not removed.
func (ctrl *PackageController) Delete(c *fiber.Ctx) error {
	pkg, err := ctrl.findPackage(c)
	if err != nil {
		return err
	}

	var subscribers int64
	if err := ctrl.DB.Model(&customerModel.CustomerModel{}).
		Where("customer_package_id = ?", pkg.PackageID).
		Count(&subscribers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check subscribers")
	}
	if subscribers > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Package still has subscribed customers")
	}

	if err := ctrl.DB.Delete(pkg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete package")
	}
	return helper.JsonDeleted(c, "Package deleted", fiber.Map{"package_id": pkg.PackageID})
}

/* ======================= INTERNAL ======================= */

func (ctrl *PackageController) findPackage(c *fiber.Ctx) (*model.PackageModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid package ID")
	}

	var pkg model.PackageModel
	if err := ctrl.DB.First(&pkg, "package_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Package not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch package")
	}
	return &pkg, nil
}

func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
