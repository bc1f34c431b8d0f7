package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbill_backend/internals/features/notifications/model"
	"netbill_backend/internals/features/notifications/sender"
)

type fakeStore struct {
	customers []ReminderCustomer
	logs      []*model.NotificationLogModel
	sentToday map[uuid.UUID]bool
}

func (f *fakeStore) ExpiringCustomers(today time.Time, windowDays int) ([]ReminderCustomer, error) {
	return f.customers, nil
}

func (f *fakeStore) SentToday(customerID uuid.UUID, channel model.NotificationChannel, today time.Time) (bool, error) {
	return f.sentToday[customerID], nil
}

func (f *fakeStore) CreateLog(entry *model.NotificationLogModel) error {
	f.logs = append(f.logs, entry)
	return nil
}

type fakeSender struct {
	failFor map[string]error
	sentTo  []string
}

func (f *fakeSender) Send(ctx context.Context, phone, message string) ([]byte, error) {
	if err, ok := f.failFor[phone]; ok {
		return nil, err
	}
	f.sentTo = append(f.sentTo, phone)
	return []byte(`{"status":"ok"}`), nil
}

func reminderCustomer(phone string, expiry time.Time, dueBDT int) ReminderCustomer {
	return ReminderCustomer{
		CustomerID:    uuid.New(),
		CustomerCode:  "NB-" + phone[len(phone)-4:],
		CustomerName:  "Test Subscriber",
		CustomerPhone: phone,
		ExpiryDate:    expiry,
		TotalDueBDT:   dueBDT,
		MonthlyBDT:    1000,
	}
}

func TestRunSendsAndLogs(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	st := &fakeStore{
		customers: []ReminderCustomer{
			reminderCustomer("01711000001", today.AddDate(0, 0, 2), 0),
			reminderCustomer("01711000002", today, 500),
		},
		sentToday: map[uuid.UUID]bool{},
	}
	snd := &fakeSender{}

	report, err := Run(context.Background(), st,
		map[model.NotificationChannel]sender.Sender{model.NotificationChannelSMS: snd}, today)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 0, report.Failed)
	assert.ElementsMatch(t, []string{"01711000001", "01711000002"}, snd.sentTo)

	require.Len(t, st.logs, 2)
	for _, entry := range st.logs {
		assert.Equal(t, model.NotificationStatusSent, entry.NotificationLogStatus)
		assert.Equal(t, model.NotificationChannelSMS, entry.NotificationLogChannel)
		assert.NotEmpty(t, entry.NotificationLogMessage)
	}
}

func TestRunIsolatesGatewayFailures(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	good := reminderCustomer("01711000001", today.AddDate(0, 0, 1), 0)
	bad := reminderCustomer("01711000002", today.AddDate(0, 0, 1), 0)
	st := &fakeStore{
		customers: []ReminderCustomer{bad, good},
		sentToday: map[uuid.UUID]bool{},
	}
	snd := &fakeSender{failFor: map[string]error{"01711000002": errors.New("gateway returned 502")}}

	report, err := Run(context.Background(), st,
		map[model.NotificationChannel]sender.Sender{model.NotificationChannelSMS: snd}, today)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "gateway returned 502")

	// the failure is still logged for support
	require.Len(t, st.logs, 2)
	statuses := []model.NotificationStatus{st.logs[0].NotificationLogStatus, st.logs[1].NotificationLogStatus}
	assert.Contains(t, statuses, model.NotificationStatusFailed)
	assert.Contains(t, statuses, model.NotificationStatusSent)
}

func TestRunSkipsAlreadySentToday(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	cust := reminderCustomer("01711000001", today.AddDate(0, 0, 2), 0)
	st := &fakeStore{
		customers: []ReminderCustomer{cust},
		sentToday: map[uuid.UUID]bool{cust.CustomerID: true},
	}
	snd := &fakeSender{}

	report, err := Run(context.Background(), st,
		map[model.NotificationChannel]sender.Sender{model.NotificationChannelSMS: snd}, today)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, snd.sentTo)
	assert.Empty(t, st.logs)
}

func TestRunSkipsDisabledChannelQuietly(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	st := &fakeStore{
		customers: []ReminderCustomer{reminderCustomer("01711000001", today, 0)},
		sentToday: map[uuid.UUID]bool{},
	}

	disabled := &fakeSender{failFor: map[string]error{"01711000001": sender.ErrChannelDisabled}}
	report, err := Run(context.Background(), st,
		map[model.NotificationChannel]sender.Sender{model.NotificationChannelWhatsApp: disabled}, today)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Errors)
	assert.Empty(t, st.logs)
}

func TestReminderMessageFallsBackToMonthlyPrice(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	msg := reminderMessage(reminderCustomer("01711000001", today.AddDate(0, 0, 3), 0), today)
	assert.Contains(t, msg, "1000 BDT")
	assert.Contains(t, msg, "3 days left")

	dueToday := reminderMessage(reminderCustomer("01711000002", today, 500), today)
	assert.Contains(t, dueToday, "500 BDT")
	assert.Contains(t, dueToday, "due today")
}
