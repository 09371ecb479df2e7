package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingType string

const (
	SettingBirthday    SettingType = "birthday"
	SettingWelcome     SettingType = "welcome"
	SettingGuarantee   SettingType = "guarantee"
	SettingFilter      SettingType = "filter"
	SettingPromotional SettingType = "promotional"
	SettingLoan        SettingType = "loan"
)

// SettingConfig is the per-type configuration stored as jsonb. Fields not
// relevant to a setting type are simply left zero.
type SettingConfig struct {
	SendTime     string `json:"sendTime,omitempty"`     // "HH:MM", business timezone
	DaysBefore   int    `json:"daysBefore,omitempty"`   // birthday lookahead
	ReminderDays []int  `json:"reminderDays,omitempty"` // filter reminder offsets
}

func (c SettingConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *SettingConfig) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, c)
}

// NotificationSetting gates each automatic rule. One row per setting type;
// writes go through an upsert keyed on setting_type.
type NotificationSetting struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	SettingType   SettingType   `gorm:"type:varchar(20);uniqueIndex;not null" json:"settingType"`
	Enabled       bool          `gorm:"default:true" json:"enabled"`
	Configuration SettingConfig `gorm:"type:jsonb;default:'{}'" json:"configuration"`

	gorm.Model
}

func (s *NotificationSetting) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
