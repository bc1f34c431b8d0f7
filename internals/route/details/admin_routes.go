// file: internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	generatorRoutes "netbill_backend/internals/features/billing/generator/routes"
	packageChangeRoutes "netbill_backend/internals/features/billing/packagechange/routes"
	billingRecordRoutes "netbill_backend/internals/features/billing/records/routes"
	customerRoutes "netbill_backend/internals/features/customers/customers/routes"
	paymentRoutes "netbill_backend/internals/features/customers/payments/routes"
	notificationRoutes "netbill_backend/internals/features/notifications/routes"
	packageRoutes "netbill_backend/internals/features/packages/routes"
	userRoutes "netbill_backend/internals/features/users/auth/routes"
)

// AdminRoutes mounts the whole back-office surface onto the authenticated
// staff group.
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	customerRoutes.CustomerAdminRoutes(admin, db)
	packageRoutes.PackageAdminRoutes(admin, db)
	paymentRoutes.PaymentAdminRoutes(admin, db)
	billingRecordRoutes.BillingRecordAdminRoutes(admin, db)
	generatorRoutes.BillingGeneratorAdminRoutes(admin, db)
	packageChangeRoutes.PackageChangeAdminRoutes(admin, db)
	notificationRoutes.NotificationAdminRoutes(admin, db)
	userRoutes.UserAdminRoutes(admin, db)
}
