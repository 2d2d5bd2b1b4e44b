package models

import (
	"time"

	"gorm.io/gorm"
)

// Cliente da oficina. Veículos e agendamentos são removidos pelo banco (CASCADE).
type Client struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Email    *string `gorm:"size:100" json:"email"`
	Phone    *string `gorm:"size:20;index" json:"phone"`
	Document *string `gorm:"size:30" json:"document"`
	Address  *string `gorm:"size:255" json:"address"`

	Vehicles     []Vehicle     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vehicles"`
	Appointments []Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	return nil
}
