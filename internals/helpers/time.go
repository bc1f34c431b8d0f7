// file: internals/helpers/time.go
package helper

import (
	"log"
	"time"
)

var dhakaLoc *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		log.Printf("[ERROR] failed to load Asia/Dhaka timezone, falling back to UTC: %v", err)
		loc = time.UTC
	}
	dhakaLoc = loc
}

// NowDhaka returns the current wall-clock time in the business timezone.
// Billing day boundaries follow Dhaka, not the server's local zone.
func NowDhaka() time.Time {
	return time.Now().In(dhakaLoc)
}

// TodayDhaka returns today's date in Dhaka at midnight UTC, the canonical
// form the billing calculators expect.
func TodayDhaka() time.Time {
	now := NowDhaka()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
