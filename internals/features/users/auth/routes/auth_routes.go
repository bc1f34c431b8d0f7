// file: internals/features/users/auth/routes/auth_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "netbill_backend/internals/features/users/auth/controller"
	"netbill_backend/internals/middlewares"
	authMiddleware "netbill_backend/internals/middlewares/auth"
)

// AuthRoutes registers the session endpoints. Login and refresh stay
// public (login behind its own tighter rate limiter); logout and me
// require a live token.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh", ctrl.Refresh)

	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
	auth.Get("/me", authMiddleware.AuthMiddleware(db), ctrl.Me)
}

// UserAdminRoutes registers operator account management behind admin auth.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	users := admin.Group("/users")
	users.Post("/", ctrl.CreateUser)
	users.Get("/", ctrl.ListUsers)
	users.Post("/:id/deactivate", ctrl.DeactivateUser)
}
