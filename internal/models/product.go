package models

import (
	"time"

	"gorm.io/gorm"
)

// Item de estoque
type Product struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Category    string  `gorm:"size:50;index" json:"category"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity"`
	Unit        string  `gorm:"size:20" json:"unit"`
	Price       float64 `json:"price"`
	Supplier    string  `gorm:"size:100" json:"supplier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
