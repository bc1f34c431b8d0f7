// file: internals/features/notifications/service/store_gorm.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netbill_backend/internals/features/notifications/model"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) ExpiringCustomers(today time.Time, windowDays int) ([]ReminderCustomer, error) {
	var rows []ReminderCustomer
	err := g.db.
		Table("customers").
		Select(`customers.customer_id,
			customers.customer_code,
			customers.customer_name,
			customers.customer_phone,
			customers.customer_expiry_date,
			customers.customer_total_due_bdt,
			COALESCE(packages.package_monthly_price_bdt, 0) AS package_monthly_price_bdt`).
		Joins("LEFT JOIN packages ON packages.package_id = customers.customer_package_id").
		Where("customers.customer_expiry_date BETWEEN ? AND ?", today, today.AddDate(0, 0, windowDays)).
		Where("customers.customer_status <> ?", "suspended").
		Where("customers.customer_deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (g *gormStore) SentToday(customerID uuid.UUID, channel model.NotificationChannel, today time.Time) (bool, error) {
	var count int64
	err := g.db.Model(&model.NotificationLogModel{}).
		Where("notification_log_customer_id = ?", customerID).
		Where("notification_log_channel = ?", channel).
		Where("notification_log_status = ?", model.NotificationStatusSent).
		Where("notification_log_sent_at >= ? AND notification_log_sent_at < ?",
			today, today.AddDate(0, 0, 1)).
		Count(&count).Error
	return count > 0, err
}

func (g *gormStore) CreateLog(entry *model.NotificationLogModel) error {
	return g.db.Create(entry).Error
}
