package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageType enumerates the template categories. The first three drive the
// automated daily rules; the rest are operator-initiated only.
type MessageType string

const (
	MessageBirthday       MessageType = "birthday"
	MessageWelcome        MessageType = "welcome"
	MessageFilterReminder MessageType = "filter_reminder"
	MessageGuarantee      MessageType = "guarantee"
	MessagePromotional    MessageType = "promotional"
	MessageLoan           MessageType = "loan"
)

type TemplateStatus string

const (
	TemplateActive   TemplateStatus = "Active"
	TemplateInactive TemplateStatus = "Inactive"
)

// MessageTemplate holds the raw content with placeholder tokens. Only the
// Active template of a given type is eligible for automatic dispatch.
type MessageTemplate struct {
	ID      uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Type    MessageType    `gorm:"type:varchar(20);not null;index" json:"type"`
	Title   string         `gorm:"not null" json:"title"`
	Content string         `gorm:"type:text;not null" json:"content"`
	Status  TemplateStatus `gorm:"type:varchar(10);default:'Active'" json:"status"`

	gorm.Model
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
