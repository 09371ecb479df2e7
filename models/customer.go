package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerStatus string

const (
	CustomerActive          CustomerStatus = "Active"
	CustomerInactive        CustomerStatus = "Inactive"
	CustomerWarrantyExpired CustomerStatus = "WarrantyExpired"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name    string `gorm:"not null" json:"name"`
	Phone   string `gorm:"not null;uniqueIndex" json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`

	FilterType string     `json:"filterType"`
	BirthDate  *time.Time `json:"birthDate"`

	JoinDate        *time.Time `json:"joinDate"`
	LastService     *time.Time `json:"lastService"`
	NextService     *time.Time `json:"nextService"`
	GuaranteeExpiry *time.Time `json:"guaranteeExpiry"`

	Status CustomerStatus `gorm:"type:varchar(20);default:'Active'" json:"status"`

	FilterChanges []FilterChange `gorm:"foreignKey:CustomerID" json:"-"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
