package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FilterChange records one completed filter replacement. Rows are immutable
// once created; only deletion by an operator is allowed.
type FilterChange struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	FilterType string    `gorm:"not null" json:"filterType"`
	ChangeDate time.Time `gorm:"not null" json:"changeDate"`
	NextDue    time.Time `gorm:"not null" json:"nextDue"`
	Technician string    `json:"technician"`
	Status     string    `gorm:"type:varchar(20);default:'Completed'" json:"status"`
	Notes      string    `gorm:"type:text" json:"notes"`

	gorm.Model
}

func (f *FilterChange) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
