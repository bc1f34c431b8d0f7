// file: internals/features/customers/payments/routes/payment_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "netbill_backend/internals/features/customers/payments/controller"
)

// PaymentAdminRoutes registers payment recording and lookup behind admin auth.
func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	payments := admin.Group("/payments")
	payments.Post("/", ctrl.Record)
	payments.Get("/", ctrl.List)
	payments.Get("/:id", ctrl.GetByID)
}
