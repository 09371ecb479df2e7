package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceReview struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`

	CustomerName string    `gorm:"not null" json:"customerName"`
	Rating       int       `gorm:"not null" json:"rating"` // 1-5
	ServiceType  string    `gorm:"not null" json:"serviceType"`
	Comment      string    `gorm:"type:text" json:"comment"`
	Technician   string    `json:"technician"`
	ReviewDate   time.Time `json:"reviewDate"`

	gorm.Model
}

func (r *ServiceReview) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
