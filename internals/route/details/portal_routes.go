// file: internals/route/details/portal_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	packageChangeRoutes "netbill_backend/internals/features/billing/packagechange/routes"
	packageRoutes "netbill_backend/internals/features/packages/routes"
)

// PortalRoutes mounts the subscriber self-service surface: browse the
// active catalog and request a package change.
func PortalRoutes(portal fiber.Router, db *gorm.DB) {
	packageRoutes.PackagePublicRoutes(portal, db)
	packageChangeRoutes.PackageChangePortalRoutes(portal, db)
}
