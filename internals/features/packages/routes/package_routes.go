// file: internals/features/packages/routes/package_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	packageController "netbill_backend/internals/features/packages/controller"
)

// PackageAdminRoutes registers package management behind admin auth.
func PackageAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := packageController.NewPackageController(db)

	packages := admin.Group("/packages")
	packages.Post("/", ctrl.Create)
	packages.Get("/", ctrl.List)
	packages.Get("/:id", ctrl.GetByID)
	packages.Put("/:id", ctrl.Update)
	packages.Delete("/:id", ctrl.Delete)
}

// PackagePublicRoutes exposes the active catalog to the subscriber portal.
func PackagePublicRoutes(portal fiber.Router, db *gorm.DB) {
	ctrl := packageController.NewPackageController(db)

	portal.Get("/packages", func(c *fiber.Ctx) error {
		// Portal always sees the active catalog only.
		c.Request().URI().QueryArgs().Set("active", "true")
		return ctrl.List(c)
	})
}
