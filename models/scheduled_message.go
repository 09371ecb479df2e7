package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageStatus string

const (
	MessageScheduled MessageStatus = "Scheduled"
	MessageSent      MessageStatus = "Sent"
	MessageFailed    MessageStatus = "Failed"
)

type MessageMethod string

const (
	MethodWhatsApp MessageMethod = "whatsapp"
	MethodSMS      MessageMethod = "sms"
)

// ScheduledMessage is one notification instance, created either up front
// (status Scheduled) or at dispatch time already in a terminal state. Rows in
// a terminal state are an append-only log of what was sent.
type ScheduledMessage struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	TemplateID *uuid.UUID `gorm:"type:uuid;index" json:"templateId"`

	RecipientName  string `gorm:"not null" json:"recipientName"`
	RecipientPhone string `gorm:"not null" json:"recipientPhone"`

	MessageType   MessageType   `gorm:"type:varchar(20);not null" json:"messageType"`
	Content       string        `gorm:"type:text" json:"content"`
	Method        MessageMethod `gorm:"type:varchar(10);default:'whatsapp'" json:"method"`
	ScheduledFor  time.Time     `gorm:"index" json:"scheduledFor"`
	Status        MessageStatus `gorm:"type:varchar(10);default:'Scheduled'" json:"status"`
	SentAt        *time.Time    `json:"sentAt"`
	ErrorMessage  string        `gorm:"type:text" json:"errorMessage"`

	gorm.Model
}

func (m *ScheduledMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// Transition moves the message to a new status, enforcing the one-shot
// Scheduled -> Sent|Failed lifecycle. Sent and Failed are terminal.
func (m *ScheduledMessage) Transition(to MessageStatus, at time.Time) error {
	if m.Status != MessageScheduled {
		return fmt.Errorf("message %s is already %s", m.ID, m.Status)
	}
	switch to {
	case MessageSent:
		m.Status = MessageSent
		m.SentAt = &at
	case MessageFailed:
		m.Status = MessageFailed
	default:
		return fmt.Errorf("invalid transition %s -> %s", m.Status, to)
	}
	return nil
}
