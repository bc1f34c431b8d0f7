// file: internals/features/users/auth/scheduler/cleanup.go
package scheduler

import (
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"netbill_backend/internals/configs"
	"netbill_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler prunes revoked tokens a while after their
// natural expiry. Keeping them a few extra days makes clock skew harmless.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := configs.GetEnv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				ttlDays = parsed
			}
		}

		for {
			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			res := db.Unscoped().
				Where("expired_at < ?", deleteBefore).
				Limit(500).
				Delete(&model.TokenBlacklist{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] token_blacklist prune failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] pruned %d expired blacklist tokens", res.RowsAffected)
			}

			time.Sleep(6 * time.Hour)
		}
	}()
}
