package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientID string  `gorm:"size:36;index;not null" json:"client_id"`
	Client   *Client `json:"client,omitempty"`

	VehicleID *string  `gorm:"size:36" json:"vehicle_id"`
	Vehicle   *Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle,omitempty"`

	Services []Service `gorm:"many2many:appointment_services;" json:"services,omitempty"`

	ScheduledAt time.Time `gorm:"index;not null" json:"scheduled_at"`
	Status      string    `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes      string  `gorm:"type:text" json:"notes"`
	Conditions string  `gorm:"type:text" json:"conditions"`
	Total      float64 `json:"total"`

	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	newID(&a.ID)
	return nil
}
