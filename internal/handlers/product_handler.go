package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/catalog"
	"github.com/BruksfildServices01/mv-autocenter/internal/dto"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/metrics"
)

type ProductHandler struct {
	repo    catalog.ProductRepository
	metrics metrics.Recorder
}

func NewProductHandler(repo catalog.ProductRepository, rec metrics.Recorder) *ProductHandler {
	return &ProductHandler{repo: repo, metrics: rec}
}

type SetQuantityRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.repo.List(c.Request.Context(), catalog.ProductFilter{
		Query:    c.Query("query"),
		Category: c.Query("category"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.Products(products))
}

func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.repo.List(c.Request.Context(), catalog.ProductFilter{LowOnly: true})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.Products(products))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in catalog.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("product", "create")
	httpresp.Created(c, dto.Product(*p))
}

func (h *ProductHandler) Update(c *gin.Context) {
	var patch catalog.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.repo.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("product", "update")
	httpresp.OK(c, dto.Product(*p))
}

// SetQuantity registra a contagem atual (entrada ou baixa de estoque).
func (h *ProductHandler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe a quantidade.")
		return
	}
	if *req.Quantity < 0 {
		httperr.FromError(c, httperr.Validation("quantity", "must not be negative"))
		return
	}

	p, err := h.repo.SetQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("product", "quantity")
	httpresp.OK(c, dto.Product(*p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("product", "delete")
	httpresp.NoContent(c)
}
