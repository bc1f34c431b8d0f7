// file: internals/features/billing/packagechange/routes/package_change_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	packageChangeController "netbill_backend/internals/features/billing/packagechange/controller"
)

// PackageChangePortalRoutes registers the subscriber-facing endpoint.
// The portal group carries its own rate limiter instead of JWT auth.
func PackageChangePortalRoutes(portal fiber.Router, db *gorm.DB) {
	ctrl := packageChangeController.NewPackageChangeController(db)

	portal.Post("/package-change", ctrl.Submit)
}

// PackageChangeAdminRoutes registers the review endpoints behind admin auth.
func PackageChangeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := packageChangeController.NewPackageChangeController(db)

	admin.Get("/package-change", ctrl.List)
	admin.Get("/package-change/:id", ctrl.GetByID)
	admin.Post("/package-change/decide", ctrl.Decide)
}
