package models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	ClientID string `gorm:"size:36;index;not null" json:"client_id"`

	Brand string  `gorm:"size:50" json:"brand"`
	Model string  `gorm:"size:100;not null" json:"model"`
	Plate *string `gorm:"size:10;index" json:"plate"`
	Year  *int    `json:"year"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	newID(&v.ID)
	return nil
}
