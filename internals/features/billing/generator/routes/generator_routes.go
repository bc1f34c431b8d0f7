// file: internals/features/billing/generator/routes/generator_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	generatorController "netbill_backend/internals/features/billing/generator/controller"
)

// BillingGeneratorAdminRoutes registers the manual billing run trigger.
// The nightly cron covers normal operation; this endpoint exists for
// re-runs after incidents and for ops verification.
func BillingGeneratorAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := generatorController.NewBillingGeneratorController(db)

	admin.Post("/billing/generate", ctrl.Generate)
}
