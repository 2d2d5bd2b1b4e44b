// Package catalog cobre estoque (produtos) e o catálogo de serviços.
package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

type StockStatus string

const (
	StockLow       StockStatus = "low"
	StockAttention StockStatus = "attention"
	StockNormal    StockStatus = "normal"
)

// StatusOf: baixo até o mínimo, atenção até 1,5x o mínimo.
func StatusOf(p models.Product) StockStatus {
	switch {
	case p.Quantity <= p.MinQuantity:
		return StockLow
	case p.Quantity <= p.MinQuantity*1.5:
		return StockAttention
	default:
		return StockNormal
	}
}

type ProductFilter struct {
	Query    string
	Category string
	LowOnly  bool
}

type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Supplier    string  `json:"supplier"`
}

func (in ProductInput) Validate() error {
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"category", in.Category},
		{"unit", in.Unit},
		{"supplier", in.Supplier},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return httperr.Validation(r.field, "is required")
		}
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return httperr.Validation("quantity", "must not be negative")
	}
	if in.Price < 0 {
		return httperr.Validation("price", "must not be negative")
	}
	return nil
}

func (in ProductInput) ToModel() models.Product {
	return models.Product{
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		Unit:        strings.TrimSpace(in.Unit),
		Price:       in.Price,
		Supplier:    strings.TrimSpace(in.Supplier),
	}
}

type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	MinQuantity *float64 `json:"min_quantity,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Supplier    *string  `json:"supplier,omitempty"`
}

func (p ProductPatch) Apply(product *models.Product) error {
	for _, f := range []struct {
		field string
		src   *string
		dst   *string
	}{
		{"name", p.Name, &product.Name},
		{"category", p.Category, &product.Category},
		{"unit", p.Unit, &product.Unit},
		{"supplier", p.Supplier, &product.Supplier},
	} {
		if f.src == nil {
			continue
		}
		v := strings.TrimSpace(*f.src)
		if v == "" {
			return httperr.Validation(f.field, "is required")
		}
		*f.dst = v
	}
	if p.MinQuantity != nil {
		if *p.MinQuantity < 0 {
			return httperr.Validation("min_quantity", "must not be negative")
		}
		product.MinQuantity = *p.MinQuantity
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return httperr.Validation("price", "must not be negative")
		}
		product.Price = *p.Price
	}
	return nil
}

type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, in ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, p ProductPatch) (*models.Product, error)
	SetQuantity(ctx context.Context, id string, quantity float64) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

func (in ServiceInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return httperr.Validation("name", "is required")
	}
	if in.Price < 0 {
		return httperr.Validation("price", "must not be negative")
	}
	if in.DurationMin < 0 {
		return httperr.Validation("duration_min", "must not be negative")
	}
	return nil
}

type ServicePatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

func (p ServicePatch) Apply(s *models.Service) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return httperr.Validation("name", "is required")
		}
		s.Name = name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return httperr.Validation("price", "must not be negative")
		}
		s.Price = *p.Price
	}
	if p.DurationMin != nil {
		s.DurationMin = *p.DurationMin
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
	return nil
}

type ServiceRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	Create(ctx context.Context, in ServiceInput) (*models.Service, error)
	Update(ctx context.Context, id string, p ServicePatch) (*models.Service, error)
}

// Chaves aceitas em /settings (textos do site público).
var SettingKeys = []string{
	"site_name",
	"hero_title",
	"hero_subtitle",
	"about_text",
	"contact_phone",
	"contact_email",
	"contact_address",
	"facebook_url",
	"instagram_url",
	"whatsapp_number",
}

func IsSettingKey(key string) bool {
	for _, k := range SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

type SettingRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Put(ctx context.Context, values map[string]string) error
}
