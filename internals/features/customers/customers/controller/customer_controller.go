// file: internals/features/customers/customers/controller/customer_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	recordService "netbill_backend/internals/features/billing/records/service"
	"netbill_backend/internals/features/customers/customers/dto"
	"netbill_backend/internals/features/customers/customers/model"
	packageModel "netbill_backend/internals/features/packages/model"
	helper "netbill_backend/internals/helpers"
)

var validate = validator.New()

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

/* ======================= CREATE ======================= */

func (ctrl *CustomerController) Create(c *fiber.Ctx) error {
	var body dto.CreateCustomerRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if body.PackageID != nil {
		if err := ctrl.ensurePackageExists(*body.PackageID); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Package not found")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.PortalPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash portal password")
	}

	cust := model.CustomerModel{
		CustomerCode:               strings.TrimSpace(body.CustomerCode),
		CustomerName:               strings.TrimSpace(body.Name),
		CustomerPhone:              strings.TrimSpace(body.Phone),
		CustomerAddress:            body.Address,
		CustomerStatus:             model.CustomerStatusActive,
		CustomerPackageID:          body.PackageID,
		CustomerPortalPasswordHash: string(hash),
	}

	// First cycle anchors on the start date; the nightly generator takes
	// over from there.
	if body.BillingStartDate != nil {
		start, err := time.Parse("2006-01-02", *body.BillingStartDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid billing_start_date")
		}
		cust.CustomerBillingStartDate = &start
		if body.PackageID != nil {
			var pkg packageModel.PackageModel
			if err := ctrl.DB.First(&pkg, "package_id = ?", *body.PackageID).Error; err == nil {
				expiry := start.AddDate(0, 0, pkg.PackageValidityDays)
				cust.CustomerExpiryDate = &expiry
			}
		}
	}

	if err := ctrl.DB.Create(&cust).Error; err != nil {
		if isDuplicate(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Customer code or phone already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create customer")
	}

	return helper.JsonCreated(c, "Customer created", dto.ToCustomerResponse(&cust, nil))
}

/* ======================= READ ======================= */

// List handles GET /api/admin/customers with ?status=, ?package_id= and ?q=
// (matches code, name or phone) filters.
func (ctrl *CustomerController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.CustomerModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("customer_status = ?", status)
	}
	if rawID := c.Query("package_id"); rawID != "" {
		pkgID, err := uuid.Parse(rawID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid package_id")
		}
		q = q.Where("customer_package_id = ?", pkgID)
	}
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		like := "%" + term + "%"
		q = q.Where("customer_code ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count customers")
	}

	var items []model.CustomerModel
	if err := q.Order("customer_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch customers")
	}

	prices, err := ctrl.monthlyPricesFor(items)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch packages")
	}

	today := helper.TodayDhaka()
	out := make([]dto.CustomerResponse, 0, len(items))
	for i := range items {
		billing := ctrl.projectBilling(&items[i], prices, today)
		out = append(out, dto.ToCustomerResponse(&items[i], billing))
	}

	return helper.JsonList(c, "Customers fetched", out,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *CustomerController) GetByID(c *fiber.Ctx) error {
	cust, err := ctrl.findCustomer(c)
	if err != nil {
		return err
	}

	prices, err2 := ctrl.monthlyPricesFor([]model.CustomerModel{*cust})
	if err2 != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch package")
	}
	billing := ctrl.projectBilling(cust, prices, helper.TodayDhaka())

	return helper.JsonOK(c, "Customer fetched", dto.ToCustomerResponse(cust, billing))
}

// BillingStatus handles GET /api/admin/customers/:id/billing-status. It
// returns the computed projection alone, for dashboards that poll it.
func (ctrl *CustomerController) BillingStatus(c *fiber.Ctx) error {
	cust, err := ctrl.findCustomer(c)
	if err != nil {
		return err
	}

	var monthly int
	if cust.CustomerPackageID != nil {
		var pkg packageModel.PackageModel
		if err := ctrl.DB.First(&pkg, "package_id = ?", *cust.CustomerPackageID).Error; err == nil {
			monthly = pkg.PackageMonthlyPriceBDT
		}
	}

	var expiry time.Time
	if cust.CustomerExpiryDate != nil {
		expiry = *cust.CustomerExpiryDate
	}
	result := recordService.CalculateStatus(expiry, cust.CustomerTotalDueBDT, cust.CustomerStatus, monthly, helper.TodayDhaka())

	return helper.JsonOK(c, "Billing status computed", dto.ToBillingStatusResponse(result))
}

/* ======================= UPDATE ======================= */

func (ctrl *CustomerController) Update(c *fiber.Ctx) error {
	cust, err := ctrl.findCustomer(c)
	if err != nil {
		return err
	}

	var body dto.UpdateCustomerRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := map[string]any{}
	if body.Name != nil {
		updates["customer_name"] = strings.TrimSpace(*body.Name)
	}
	if body.Phone != nil {
		updates["customer_phone"] = strings.TrimSpace(*body.Phone)
	}
	if body.Address != nil {
		updates["customer_address"] = *body.Address
	}
	if body.PackageID != nil {
		if err := ctrl.ensurePackageExists(*body.PackageID); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Package not found")
		}
		// Direct reassignment skips settlement. Prorated switches go
		// through the package change request flow instead.
		updates["customer_package_id"] = *body.PackageID
	}
	if body.PortalPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*body.PortalPassword), bcrypt.DefaultCost)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash portal password")
		}
		updates["customer_portal_password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToCustomerResponse(cust, nil))
	}

	if err := ctrl.DB.Model(cust).Updates(updates).Error; err != nil {
		if isDuplicate(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Phone already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update customer")
	}

	return helper.JsonUpdated(c, "Customer updated", dto.ToCustomerResponse(cust, nil))
}

/* ======================= SUSPEND / REACTIVATE ======================= */

// Suspend parks the account. A suspended customer is excluded from billing
// runs and reminders until an operator reactivates them.
func (ctrl *CustomerController) Suspend(c *fiber.Ctx) error {
	cust, err := ctrl.findCustomer(c)
	if err != nil {
		return err
	}
	if cust.CustomerStatus == model.CustomerStatusSuspended {
		return helper.JsonError(c, fiber.StatusConflict, "Customer is already suspended")
	}

	if err := ctrl.DB.Model(cust).
		Update("customer_status", model.CustomerStatusSuspended).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to suspend customer")
	}
	return helper.JsonUpdated(c, "Customer suspended", dto.ToCustomerResponse(cust, nil))
}

// Reactivate recomputes the status from the billing facts so the customer
// lands on active, expiring or expired as their dates dictate.
func (ctrl *CustomerController) Reactivate(c *fiber.Ctx) error {
	cust, err := ctrl.findCustomer(c)
	if err != nil {
		return err
	}
	if cust.CustomerStatus != model.CustomerStatusSuspended {
		return helper.JsonError(c, fiber.StatusConflict, "Customer is not suspended")
	}

	var monthly int
	if cust.CustomerPackageID != nil {
		var pkg packageModel.PackageModel
		if err := ctrl.DB.First(&pkg, "package_id = ?", *cust.CustomerPackageID).Error; err == nil {
			monthly = pkg.PackageMonthlyPriceBDT
		}
	}
	var expiry time.Time
	if cust.CustomerExpiryDate != nil {
		expiry = *cust.CustomerExpiryDate
	}
	newStatus := recordService.DeriveStatus(expiry, cust.CustomerTotalDueBDT, model.CustomerStatusActive, monthly, helper.TodayDhaka())

	if err := ctrl.DB.Model(cust).
		Update("customer_status", newStatus).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reactivate customer")
	}
	return helper.JsonUpdated(c, "Customer reactivated", dto.ToCustomerResponse(cust, nil))
}

/* ======================= DELETE ======================= */

func (ctrl *CustomerController) Delete(c *fiber.Ctx) error {
	cust, err := ctrl.findCustomer(c)
	if err != nil {
		return err
	}

	if err := ctrl.DB.Delete(cust).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete customer")
	}
	return helper.JsonDeleted(c, "Customer deleted", fiber.Map{"customer_id": cust.CustomerID})
}

/* ======================= INTERNAL ======================= */

func (ctrl *CustomerController) findCustomer(c *fiber.Ctx) (*model.CustomerModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid customer ID")
	}

	var cust model.CustomerModel
	if err := ctrl.DB.First(&cust, "customer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Customer not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch customer")
	}
	return &cust, nil
}

func (ctrl *CustomerController) ensurePackageExists(id uuid.UUID) error {
	var count int64
	if err := ctrl.DB.Model(&packageModel.PackageModel{}).
		Where("package_id = ? AND package_is_active = true", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// monthlyPricesFor batch-loads package prices so list responses don't issue
// one query per row.
func (ctrl *CustomerController) monthlyPricesFor(customers []model.CustomerModel) (map[uuid.UUID]int, error) {
	ids := make([]uuid.UUID, 0, len(customers))
	seen := map[uuid.UUID]bool{}
	for i := range customers {
		if pid := customers[i].CustomerPackageID; pid != nil && !seen[*pid] {
			seen[*pid] = true
			ids = append(ids, *pid)
		}
	}
	prices := map[uuid.UUID]int{}
	if len(ids) == 0 {
		return prices, nil
	}

	var pkgs []packageModel.PackageModel
	if err := ctrl.DB.Where("package_id IN ?", ids).Find(&pkgs).Error; err != nil {
		return nil, err
	}
	for i := range pkgs {
		prices[pkgs[i].PackageID] = pkgs[i].PackageMonthlyPriceBDT
	}
	return prices, nil
}

func (ctrl *CustomerController) projectBilling(cust *model.CustomerModel, prices map[uuid.UUID]int, today time.Time) *dto.BillingStatusResponse {
	var monthly int
	if cust.CustomerPackageID != nil {
		monthly = prices[*cust.CustomerPackageID]
	}
	var expiry time.Time
	if cust.CustomerExpiryDate != nil {
		expiry = *cust.CustomerExpiryDate
	}
	result := recordService.CalculateStatus(expiry, cust.CustomerTotalDueBDT, cust.CustomerStatus, monthly, today)
	resp := dto.ToBillingStatusResponse(result)
	return &resp
}

func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
