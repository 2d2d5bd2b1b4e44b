package dto

import (
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/catalog"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// ProductDTO acrescenta a situação do estoque ao produto.
type ProductDTO struct {
	models.Product
	Status catalog.StockStatus `json:"status"`
}

func Product(p models.Product) ProductDTO {
	return ProductDTO{Product: p, Status: catalog.StatusOf(p)}
}

func Products(ps []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, Product(p))
	}
	return out
}
