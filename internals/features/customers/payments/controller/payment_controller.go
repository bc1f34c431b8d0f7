// file: internals/features/customers/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"netbill_backend/internals/features/customers/payments/dto"
	"netbill_backend/internals/features/customers/payments/model"
	"netbill_backend/internals/features/customers/payments/service"
	helper "netbill_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB  *gorm.DB
	svc *service.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:  db,
		svc: service.NewPaymentService(service.NewGormStore(db)),
	}
}

/* ======================= RECORD ======================= */

// Record handles POST /api/admin/payments. Payments are append-only; there
// is no update or delete endpoint, corrections are new entries.
func (ctrl *PaymentController) Record(c *fiber.Ctx) error {
	var body dto.RecordPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var receivedBy *uuid.UUID
	if operatorID, err := helper.GetUserIDFromToken(c); err == nil {
		receivedBy = &operatorID
	}

	res, err := ctrl.svc.Record(service.RecordInput{
		CustomerID: body.CustomerID,
		AmountBDT:  body.AmountBDT,
		Method:     model.PaymentMethod(body.Method),
		Reference:  body.Reference,
		ReceivedBy: receivedBy,
	}, helper.TodayDhaka())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidAmount):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("[ERROR] payment recording failed: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record payment")
		}
	}

	log.Printf("[INFO] payment recorded customer=%s amount=%d remaining=%d",
		body.CustomerID, body.AmountBDT, res.NewTotalDueBDT)

	return helper.JsonCreated(c, "Payment recorded", dto.RecordPaymentResult{
		Payment:        dto.ToPaymentResponse(res.Payment),
		NewTotalDueBDT: res.NewTotalDueBDT,
		NewExpiryDate:  res.NewExpiryDate,
		NewStatus:      string(res.NewStatus),
		ExpiryExtended: res.ExpiryExtended,
	})
}

/* ======================= READ ======================= */

// List handles GET /api/admin/payments with optional ?customer_id= and
// ?method= filters.
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{})
	if rawID := c.Query("customer_id"); rawID != "" {
		custID, err := uuid.Parse(rawID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid customer_id")
		}
		q = q.Where("payment_customer_id = ?", custID)
	}
	if method := c.Query("method"); method != "" {
		q = q.Where("payment_method = ?", method)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count payments")
	}

	var items []model.PaymentModel
	if err := q.Order("payment_paid_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return helper.JsonList(c, "Payments fetched", dto.ToPaymentResponses(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *PaymentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment ID")
	}

	var item model.PaymentModel
	if err := ctrl.DB.First(&item, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	return helper.JsonOK(c, "Payment fetched", dto.ToPaymentResponse(&item))
}
