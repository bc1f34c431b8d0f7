// file: internals/features/notifications/routes/notification_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "netbill_backend/internals/features/notifications/controller"
)

// NotificationAdminRoutes registers reminder triggering and delivery-log
// lookups behind admin auth.
func NotificationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := notificationController.NewNotificationController(db)

	notifications := admin.Group("/notifications")
	notifications.Get("/", ctrl.List)
	notifications.Post("/send-reminders", ctrl.SendReminders)
}
