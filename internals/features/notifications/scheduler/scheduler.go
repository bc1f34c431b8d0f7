// file: internals/features/notifications/scheduler/scheduler.go
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"netbill_backend/internals/configs"
	"netbill_backend/internals/features/notifications/model"
	"netbill_backend/internals/features/notifications/sender"
	service "netbill_backend/internals/features/notifications/service"
	helper "netbill_backend/internals/helpers"
)

// StartReminderScheduler sends payment reminders each morning (default
// 09:00 Dhaka, after the nightly billing run has settled statuses).
func StartReminderScheduler(db *gorm.DB) *cron.Cron {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	spec := configs.GetEnv("REMINDER_CRON", "0 9 * * *")
	if _, err := c.AddFunc(spec, func() {
		log.Println("[REMINDER] scheduled run starting...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, err := service.Run(ctx, service.NewGormStore(db), Senders(), helper.TodayDhaka())
		if err != nil {
			log.Printf("[REMINDER ERROR] customer fetch failed: %v", err)
			return
		}
		log.Printf("[REMINDER] processed=%d sent=%d skipped=%d failed=%d",
			report.Processed, report.Sent, report.Skipped, report.Failed)
		for _, e := range report.Errors {
			log.Printf("[REMINDER ERROR] %s", e)
		}
	}); err != nil {
		log.Fatalf("❌ Invalid REMINDER_CRON %q: %v", spec, err)
	}

	c.Start()
	return c
}

// Senders wires every delivery channel. Unconfigured channels answer
// ErrChannelDisabled and the run skips them.
func Senders() map[model.NotificationChannel]sender.Sender {
	return map[model.NotificationChannel]sender.Sender{
		model.NotificationChannelSMS:      sender.NewSMSSender(),
		model.NotificationChannelWhatsApp: sender.NewWhatsAppSender(),
	}
}
