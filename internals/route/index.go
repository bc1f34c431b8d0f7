// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"netbill_backend/internals/constants"
	"netbill_backend/internals/middlewares"
	authMiddleware "netbill_backend/internals/middlewares/auth"
	routeDetails "netbill_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up auth routes...")
	routeDetails.AuthRoutes(api, db)

	// ===================== PORTAL =====================
	// Subscriber self-service. No JWT; customers authenticate per-request
	// with their portal password, behind a tighter rate limit.
	log.Println("[INFO] Setting up PORTAL group...")
	portal := api.Group("/portal", middlewares.PortalRateLimiter())
	routeDetails.PortalRoutes(portal, db)

	// ===================== STAFF =====================
	// Admin and operator share the management surface; destructive and
	// financial-configuration routes stay admin-only inside the details.
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("back office"), constants.RoleAdmin, constants.RoleOperator),
	)
	routeDetails.AdminRoutes(admin, db)
}
