// file: internals/features/notifications/service/reminder.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"netbill_backend/internals/features/notifications/model"
	"netbill_backend/internals/features/notifications/sender"
)

// reminderWindowDays mirrors the expiring window of the status calculator.
const reminderWindowDays = 3

// ReminderCustomer is the projection of a customer the reminder run needs.
type ReminderCustomer struct {
	CustomerID    uuid.UUID `gorm:"column:customer_id"`
	CustomerCode  string    `gorm:"column:customer_code"`
	CustomerName  string    `gorm:"column:customer_name"`
	CustomerPhone string    `gorm:"column:customer_phone"`
	ExpiryDate    time.Time `gorm:"column:customer_expiry_date"`
	TotalDueBDT   int       `gorm:"column:customer_total_due_bdt"`
	MonthlyBDT    int       `gorm:"column:package_monthly_price_bdt"`
}

type Store interface {
	// ExpiringCustomers returns non-suspended customers whose expiry falls
	// within [today, today+windowDays].
	ExpiringCustomers(today time.Time, windowDays int) ([]ReminderCustomer, error)

	// SentToday reports whether a reminder already went out on this channel
	// for this customer today, so re-runs don't spam subscribers.
	SentToday(customerID uuid.UUID, channel model.NotificationChannel, today time.Time) (bool, error)

	CreateLog(entry *model.NotificationLogModel) error
}

type RunReport struct {
	Processed int      `json:"processed"`
	Sent      int      `json:"sent"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Run sends payment reminders over every configured channel. Each customer
// and channel fails independently; one dead gateway never blocks the rest
// of the batch.
func Run(ctx context.Context, st Store, senders map[model.NotificationChannel]sender.Sender, today time.Time) (RunReport, error) {
	var report RunReport

	customers, err := st.ExpiringCustomers(today, reminderWindowDays)
	if err != nil {
		return report, err
	}

	for _, cust := range customers {
		report.Processed++
		message := reminderMessage(cust, today)

		for channel, snd := range senders {
			already, err := st.SentToday(cust.CustomerID, channel, today)
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors,
					fmt.Sprintf("customer %s (%s): %v", cust.CustomerCode, channel, err))
				continue
			}
			if already {
				report.Skipped++
				continue
			}

			providerResp, sendErr := snd.Send(ctx, cust.CustomerPhone, message)
			if errors.Is(sendErr, sender.ErrChannelDisabled) {
				report.Skipped++
				continue
			}

			entry := &model.NotificationLogModel{
				NotificationLogCustomerID: cust.CustomerID,
				NotificationLogChannel:    channel,
				NotificationLogMessage:    message,
				NotificationLogStatus:     model.NotificationStatusSent,
			}
			if len(providerResp) > 0 {
				entry.NotificationLogPayload = datatypes.JSON(providerResp)
			}
			if sendErr != nil {
				entry.NotificationLogStatus = model.NotificationStatusFailed
				entry.NotificationLogPayload = datatypes.JSON(
					fmt.Sprintf(`{"error":%q}`, sendErr.Error()))
				report.Failed++
				report.Errors = append(report.Errors,
					fmt.Sprintf("customer %s (%s): %v", cust.CustomerCode, channel, sendErr))
			} else {
				report.Sent++
			}

			if err := st.CreateLog(entry); err != nil {
				report.Errors = append(report.Errors,
					fmt.Sprintf("customer %s (%s): log write failed: %v", cust.CustomerCode, channel, err))
			}
		}
	}

	return report, nil
}

func reminderMessage(cust ReminderCustomer, today time.Time) string {
	days := int(cust.ExpiryDate.Sub(today).Hours() / 24)
	due := cust.TotalDueBDT
	if due <= 0 {
		due = cust.MonthlyBDT
	}
	if days <= 0 {
		return fmt.Sprintf("Dear %s, your internet bill of %d BDT is due today (%s). Please pay to avoid disconnection.",
			cust.CustomerName, due, cust.ExpiryDate.Format("02 Jan 2006"))
	}
	return fmt.Sprintf("Dear %s, your internet bill of %d BDT is due on %s (%d days left). Please pay on time.",
		cust.CustomerName, due, cust.ExpiryDate.Format("02 Jan 2006"), days)
}
