// file: internals/features/billing/records/routes/billing_record_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRecordController "netbill_backend/internals/features/billing/records/controller"
)

// BillingRecordAdminRoutes registers cycle history lookups behind admin auth.
func BillingRecordAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := billingRecordController.NewBillingRecordController(db)

	records := admin.Group("/billing-records")
	records.Get("/", ctrl.List)
	records.Get("/:id", ctrl.GetByID)
}
