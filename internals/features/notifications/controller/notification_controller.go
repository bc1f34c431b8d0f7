// file: internals/features/notifications/controller/notification_controller.go
package controller

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"netbill_backend/internals/features/notifications/model"
	"netbill_backend/internals/features/notifications/scheduler"
	service "netbill_backend/internals/features/notifications/service"
	helper "netbill_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

/* ======================= TRIGGER ======================= */

// SendReminders handles POST /api/admin/notifications/send-reminders, the
// manual counterpart of the morning cron.
func (ctrl *NotificationController) SendReminders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := service.Run(ctx, service.NewGormStore(ctrl.DB), scheduler.Senders(), helper.TodayDhaka())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch expiring customers: "+err.Error())
	}

	if report.Failed > 0 {
		log.Printf("[REMINDER] manual run finished with %d failures", report.Failed)
	}
	return helper.JsonOK(c, "Reminder run complete", report)
}

/* ======================= READ ======================= */

// List handles GET /api/admin/notifications with optional ?customer_id=,
// ?channel= and ?status= filters.
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.NotificationLogModel{})
	if rawID := c.Query("customer_id"); rawID != "" {
		custID, err := uuid.Parse(rawID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid customer_id")
		}
		q = q.Where("notification_log_customer_id = ?", custID)
	}
	if channel := c.Query("channel"); channel != "" {
		q = q.Where("notification_log_channel = ?", channel)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("notification_log_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var items []model.NotificationLogModel
	if err := q.Order("notification_log_sent_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	return helper.JsonList(c, "Notifications fetched", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
