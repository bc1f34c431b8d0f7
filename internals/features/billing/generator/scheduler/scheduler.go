// file: internals/features/billing/generator/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"netbill_backend/internals/configs"
	service "netbill_backend/internals/features/billing/generator/service"
	helper "netbill_backend/internals/helpers"
)

// StartBillingScheduler runs the cycle generator on a cron schedule
// (default: shortly after midnight Dhaka time). The HTTP trigger stays
// available for operator-driven re-runs; both paths share the same
// idempotency guards so overlap is harmless.
func StartBillingScheduler(db *gorm.DB) *cron.Cron {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	spec := configs.GetEnv("BILLING_CRON", "10 0 * * *")
	if _, err := c.AddFunc(spec, func() {
		log.Println("[BILLING] scheduled run starting...")
		report, err := service.Run(service.NewGormStore(db), helper.TodayDhaka())
		if err != nil {
			log.Printf("[BILLING ERROR] customer fetch failed: %v", err)
			return
		}
		log.Printf("[BILLING] processed=%d bills=%d records=%d errors=%d",
			report.Processed, report.BillsGenerated, report.BillingRecordsCreated, len(report.Errors))
		for _, e := range report.Errors {
			log.Printf("[BILLING ERROR] %s", e)
		}
	}); err != nil {
		log.Fatalf("❌ Invalid BILLING_CRON %q: %v", spec, err)
	}

	c.Start()
	return c
}
