// services/store.go
package services

import (
	"context"
	"errors"
	"time"

	"aquacare-backend/models"

	"gorm.io/gorm"
)

// Store is the record-store port the orchestrator runs against. The gorm
// implementation backs production; tests use an in-memory fake.
// ActiveTemplate and Setting return (nil, nil) when no row matches.
type Store interface {
	CustomersWithBirthDate(ctx context.Context) ([]models.Customer, error)
	CustomersWithServiceDue(ctx context.Context, by time.Time) ([]models.Customer, error)
	CustomersWithGuaranteeExpiry(ctx context.Context, on time.Time) ([]models.Customer, error)
	ActiveTemplate(ctx context.Context, msgType models.MessageType) (*models.MessageTemplate, error)
	Setting(ctx context.Context, settingType models.SettingType) (*models.NotificationSetting, error)
	CreateScheduledMessage(ctx context.Context, msg *models.ScheduledMessage) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CustomersWithBirthDate(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("birth_date IS NOT NULL").
		Find(&customers).Error
	return customers, err
}

func (s *GormStore) CustomersWithServiceDue(ctx context.Context, by time.Time) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("next_service IS NOT NULL AND next_service <= ?", by).
		Find(&customers).Error
	return customers, err
}

func (s *GormStore) CustomersWithGuaranteeExpiry(ctx context.Context, on time.Time) ([]models.Customer, error) {
	start := time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, on.Location())
	end := start.AddDate(0, 0, 1)
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("guarantee_expiry IS NOT NULL AND guarantee_expiry >= ? AND guarantee_expiry < ?", start, end).
		Find(&customers).Error
	return customers, err
}

func (s *GormStore) ActiveTemplate(ctx context.Context, msgType models.MessageType) (*models.MessageTemplate, error) {
	var template models.MessageTemplate
	err := s.db.WithContext(ctx).
		Where("type = ? AND status = ?", msgType, models.TemplateActive).
		First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *GormStore) Setting(ctx context.Context, settingType models.SettingType) (*models.NotificationSetting, error) {
	var setting models.NotificationSetting
	err := s.db.WithContext(ctx).
		Where("setting_type = ?", settingType).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *GormStore) CreateScheduledMessage(ctx context.Context, msg *models.ScheduledMessage) error {
	return s.db.WithContext(ctx).Create(msg).Error
}
