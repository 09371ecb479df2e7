package services

import (
	"context"
	"testing"
	"time"

	"aquacare-backend/models"
	"aquacare-backend/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	customers []models.Customer
	templates map[models.MessageType]*models.MessageTemplate
	settings  map[models.SettingType]*models.NotificationSetting
	created   []models.ScheduledMessage
}

func (s *fakeStore) CustomersWithBirthDate(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range s.customers {
		if c.BirthDate != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) CustomersWithServiceDue(ctx context.Context, by time.Time) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range s.customers {
		if c.NextService != nil && !c.NextService.After(by) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) CustomersWithGuaranteeExpiry(ctx context.Context, on time.Time) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range s.customers {
		if c.GuaranteeExpiry != nil && utils.DaysBetween(on, *c.GuaranteeExpiry) == 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) ActiveTemplate(ctx context.Context, msgType models.MessageType) (*models.MessageTemplate, error) {
	return s.templates[msgType], nil
}

func (s *fakeStore) Setting(ctx context.Context, settingType models.SettingType) (*models.NotificationSetting, error) {
	return s.settings[settingType], nil
}

func (s *fakeStore) CreateScheduledMessage(ctx context.Context, msg *models.ScheduledMessage) error {
	s.created = append(s.created, *msg)
	return nil
}

type fakeMessenger struct {
	failPhones map[string]string
	sent       []OutboundMessage
}

func (m *fakeMessenger) SendOne(ctx context.Context, msg OutboundMessage) SendResult {
	m.sent = append(m.sent, msg)
	if errMsg, ok := m.failPhones[msg.To]; ok {
		return SendResult{Error: errMsg, To: msg.To, Method: msg.Method}
	}
	return SendResult{Success: true, MessageID: "wamid.test", To: msg.To, Method: msg.Method}
}

func (m *fakeMessenger) SendBulk(ctx context.Context, msgs []OutboundMessage) BulkResult {
	return sendSequential(ctx, msgs, 0, m.SendOne)
}

func newTestOrchestrator(store Store, messenger Messenger, today time.Time) *Orchestrator {
	return NewOrchestrator(store, messenger, time.UTC, zerolog.Nop()).
		WithClock(func() time.Time { return today })
}

func activeTemplate(msgType models.MessageType, content string) *models.MessageTemplate {
	return &models.MessageTemplate{
		ID:      uuid.New(),
		Type:    msgType,
		Title:   string(msgType),
		Content: content,
		Status:  models.TemplateActive,
	}
}

func TestRunSendsAndPersistsPerRecipient(t *testing.T) {
	today := date(2026, time.March, 15)
	store := &fakeStore{
		customers: []models.Customer{
			{ID: uuid.New(), Name: "Asha", Phone: "9876543210", BirthDate: datePtr(1990, time.March, 15)},
			{ID: uuid.New(), Name: "Ravi", Phone: "9000000000", NextService: datePtr(2026, time.March, 10)},
		},
		templates: map[models.MessageType]*models.MessageTemplate{
			models.MessageBirthday:       activeTemplate(models.MessageBirthday, "Happy birthday [NAME]!"),
			models.MessageFilterReminder: activeTemplate(models.MessageFilterReminder, "Hi [NAME], your [FILTER_TYPE] filter is due."),
		},
	}
	messenger := &fakeMessenger{}

	summary := newTestOrchestrator(store, messenger, today).Run(context.Background())

	assert.True(t, summary.Success)
	assert.Equal(t, "2026-03-15", summary.Date)
	assert.Equal(t, 2, summary.TotalMessagesSent)
	assert.Equal(t, 0, summary.TotalErrors)
	assert.Contains(t, summary.Results, "Birthday message sent to Asha")
	assert.Contains(t, summary.Results, "Filter reminder sent to Ravi")

	require.Len(t, store.created, 2)
	for _, row := range store.created {
		assert.Equal(t, models.MessageSent, row.Status)
		require.NotNil(t, row.SentAt)
		assert.Empty(t, row.ErrorMessage)
	}
	assert.Equal(t, "Happy birthday Asha!", store.created[0].Content)
	assert.Equal(t, "Hi Ravi, your Standard filter is due.", store.created[1].Content)
}

func TestRunRecordsFailuresWithoutAborting(t *testing.T) {
	today := date(2026, time.March, 15)
	store := &fakeStore{
		customers: []models.Customer{
			{ID: uuid.New(), Name: "Asha", Phone: "9876543210", BirthDate: datePtr(1990, time.March, 15)},
			{ID: uuid.New(), Name: "Ravi", Phone: "9000000000", BirthDate: datePtr(1985, time.March, 15)},
		},
		templates: map[models.MessageType]*models.MessageTemplate{
			models.MessageBirthday: activeTemplate(models.MessageBirthday, "Happy birthday [NAME]!"),
		},
	}
	messenger := &fakeMessenger{failPhones: map[string]string{"9876543210": "rejected number"}}

	summary := newTestOrchestrator(store, messenger, today).Run(context.Background())

	assert.Equal(t, 1, summary.TotalMessagesSent)
	assert.Equal(t, 1, summary.TotalErrors)
	assert.Contains(t, summary.Results, "Failed to send birthday message to Asha: rejected number")
	assert.Contains(t, summary.Results, "Birthday message sent to Ravi")

	require.Len(t, store.created, 2)
	assert.Equal(t, models.MessageFailed, store.created[0].Status)
	assert.Equal(t, "rejected number", store.created[0].ErrorMessage)
	assert.Nil(t, store.created[0].SentAt)
	assert.Equal(t, models.MessageSent, store.created[1].Status)
}

func TestRunSkipsDisabledRuleEntirely(t *testing.T) {
	today := date(2026, time.March, 15)
	store := &fakeStore{
		customers: []models.Customer{
			{ID: uuid.New(), Name: "Asha", Phone: "9876543210", BirthDate: datePtr(1990, time.March, 15)},
		},
		templates: map[models.MessageType]*models.MessageTemplate{
			models.MessageBirthday: activeTemplate(models.MessageBirthday, "Happy birthday [NAME]!"),
		},
		settings: map[models.SettingType]*models.NotificationSetting{
			models.SettingBirthday: {SettingType: models.SettingBirthday, Enabled: false},
		},
	}
	messenger := &fakeMessenger{}

	summary := newTestOrchestrator(store, messenger, today).Run(context.Background())

	assert.Equal(t, 0, summary.TotalMessagesSent)
	assert.Equal(t, 0, summary.TotalErrors)
	assert.Empty(t, summary.Results)
	assert.Empty(t, messenger.sent)
	assert.Empty(t, store.created)
}

func TestRunNotesMissingTemplateAndContinues(t *testing.T) {
	today := date(2026, time.March, 15)
	store := &fakeStore{
		customers: []models.Customer{
			{ID: uuid.New(), Name: "Asha", Phone: "9876543210", BirthDate: datePtr(1990, time.March, 15)},
			{ID: uuid.New(), Name: "Ravi", Phone: "9000000000", NextService: datePtr(2026, time.March, 1)},
		},
		templates: map[models.MessageType]*models.MessageTemplate{
			models.MessageFilterReminder: activeTemplate(models.MessageFilterReminder, "Hi [NAME]"),
		},
	}
	messenger := &fakeMessenger{}

	summary := newTestOrchestrator(store, messenger, today).Run(context.Background())

	assert.Contains(t, summary.Results, "No active birthday template found, skipping")
	assert.Contains(t, summary.Results, "Filter reminder sent to Ravi")
	assert.Equal(t, 1, summary.TotalMessagesSent)
	require.Len(t, store.created, 1)
}

func TestRunAppliesBirthdayDaysBeforeOffset(t *testing.T) {
	today := date(2026, time.March, 12)
	store := &fakeStore{
		customers: []models.Customer{
			{ID: uuid.New(), Name: "Asha", Phone: "9876543210", BirthDate: datePtr(1990, time.March, 15)},
		},
		templates: map[models.MessageType]*models.MessageTemplate{
			models.MessageBirthday: activeTemplate(models.MessageBirthday, "Happy birthday [NAME]!"),
		},
		settings: map[models.SettingType]*models.NotificationSetting{
			models.SettingBirthday: {
				SettingType:   models.SettingBirthday,
				Enabled:       true,
				Configuration: models.SettingConfig{DaysBefore: 3},
			},
		},
	}
	messenger := &fakeMessenger{}

	summary := newTestOrchestrator(store, messenger, today).Run(context.Background())

	assert.Equal(t, 1, summary.TotalMessagesSent)
	assert.Contains(t, summary.Results, "Birthday message sent to Asha")
}

func TestRunGuaranteeExactDateOnly(t *testing.T) {
	today := date(2026, time.August, 1)
	store := &fakeStore{
		customers: []models.Customer{
			{ID: uuid.New(), Name: "Exactly7", Phone: "9100000001", GuaranteeExpiry: datePtr(2026, time.August, 8)},
			{ID: uuid.New(), Name: "SixDays", Phone: "9100000002", GuaranteeExpiry: datePtr(2026, time.August, 7)},
		},
		templates: map[models.MessageType]*models.MessageTemplate{
			models.MessageGuarantee: activeTemplate(models.MessageGuarantee, "Hi [NAME], your guarantee expires soon."),
		},
	}
	messenger := &fakeMessenger{}

	summary := newTestOrchestrator(store, messenger, today).Run(context.Background())

	assert.Equal(t, 1, summary.TotalMessagesSent)
	assert.Contains(t, summary.Results, "Guarantee reminder sent to Exactly7")
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "9100000001", messenger.sent[0].To)
}

type fakeDedup struct {
	claimed map[string]bool
}

func (d *fakeDedup) Claim(ctx context.Context, customerID uuid.UUID, rule RuleType, dateKey string) bool {
	key := string(rule) + ":" + customerID.String() + ":" + dateKey
	if d.claimed[key] {
		return false
	}
	d.claimed[key] = true
	return true
}

func TestRunDedupSuppressesSecondRun(t *testing.T) {
	today := date(2026, time.March, 15)
	store := &fakeStore{
		customers: []models.Customer{
			{ID: uuid.New(), Name: "Asha", Phone: "9876543210", BirthDate: datePtr(1990, time.March, 15)},
		},
		templates: map[models.MessageType]*models.MessageTemplate{
			models.MessageBirthday: activeTemplate(models.MessageBirthday, "Happy birthday [NAME]!"),
		},
	}
	messenger := &fakeMessenger{}
	orch := newTestOrchestrator(store, messenger, today).
		WithDedup(&fakeDedup{claimed: map[string]bool{}})

	first := orch.Run(context.Background())
	second := orch.Run(context.Background())

	assert.Equal(t, 1, first.TotalMessagesSent)
	assert.Equal(t, 0, second.TotalMessagesSent)
	assert.Len(t, messenger.sent, 1)
	assert.Len(t, store.created, 1)
}
