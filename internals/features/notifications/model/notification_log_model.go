// file: internals/features/notifications/model/notification_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationChannel string

const (
	NotificationChannelSMS      NotificationChannel = "sms"
	NotificationChannelWhatsApp NotificationChannel = "whatsapp"
)

type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// NotificationLogModel records every reminder handed to a delivery channel,
// with the raw provider response kept as JSON for support lookups.
type NotificationLogModel struct {
	NotificationLogID uuid.UUID `gorm:"column:notification_log_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_log_id"`

	// FK → customers(customer_id)
	NotificationLogCustomerID uuid.UUID `gorm:"column:notification_log_customer_id;type:uuid;not null;index:ix_notification_customer" json:"notification_log_customer_id"`

	NotificationLogChannel NotificationChannel `gorm:"column:notification_log_channel;type:varchar(20);not null" json:"notification_log_channel"`
	NotificationLogMessage string              `gorm:"column:notification_log_message;type:text;not null" json:"notification_log_message"`

	// Raw provider response / error detail
	NotificationLogPayload datatypes.JSON `gorm:"column:notification_log_payload;type:jsonb" json:"notification_log_payload,omitempty"`

	NotificationLogStatus NotificationStatus `gorm:"column:notification_log_status;type:varchar(20);not null;index:ix_notification_status" json:"notification_log_status"`

	NotificationLogSentAt    time.Time      `gorm:"column:notification_log_sent_at;not null;default:now()" json:"notification_log_sent_at"`
	NotificationLogDeletedAt gorm.DeletedAt `gorm:"column:notification_log_deleted_at;index" json:"-"`
}

func (NotificationLogModel) TableName() string {
	return "notification_logs"
}
