// file: internals/features/billing/generator/controller/generator_controller.go
package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	service "netbill_backend/internals/features/billing/generator/service"
	helper "netbill_backend/internals/helpers"
)

type BillingGeneratorController struct {
	DB *gorm.DB
}

func NewBillingGeneratorController(db *gorm.DB) *BillingGeneratorController {
	return &BillingGeneratorController{DB: db}
}

/* ======================= GENERATE ======================= */
// POST /api/admin/billing/generate
//
// Idempotent batch trigger: per-customer failures land in details.errors and
// the endpoint still answers 200. Only a failed customer fetch is a 500.
func (h *BillingGeneratorController) Generate(c *fiber.Ctx) error {
	report, err := service.Run(service.NewGormStore(h.DB), helper.TodayDhaka())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch due customers: "+err.Error())
	}

	if len(report.Errors) > 0 {
		log.Printf("[BILLING] run finished with %d errors: %v", len(report.Errors), report.Errors)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Billing run complete: %d processed, %d bills generated", report.Processed, report.BillsGenerated),
		"details": report,
	})
}
