// file: internals/features/customers/customers/routes/customer_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	customerController "netbill_backend/internals/features/customers/customers/controller"
)

// CustomerAdminRoutes registers customer management behind admin auth.
func CustomerAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := customerController.NewCustomerController(db)

	customers := admin.Group("/customers")
	customers.Post("/", ctrl.Create)
	customers.Get("/", ctrl.List)
	customers.Get("/:id", ctrl.GetByID)
	customers.Get("/:id/billing-status", ctrl.BillingStatus)
	customers.Put("/:id", ctrl.Update)
	customers.Post("/:id/suspend", ctrl.Suspend)
	customers.Post("/:id/reactivate", ctrl.Reactivate)
	customers.Delete("/:id", ctrl.Delete)
}
