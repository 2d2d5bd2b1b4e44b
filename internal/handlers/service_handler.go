package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/catalog"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/navigation"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/metrics"
	"github.com/BruksfildServices01/mv-autocenter/internal/middleware"
)

type ServiceHandler struct {
	repo    catalog.ServiceRepository
	metrics metrics.Recorder
}

func NewServiceHandler(repo catalog.ServiceRepository, rec metrics.Recorder) *ServiceHandler {
	return &ServiceHandler{repo: repo, metrics: rec}
}

// List mostra só os ativos; ?all=true (papéis de gestão) inclui os inativos.
func (h *ServiceHandler) List(c *gin.Context) {
	activeOnly := true
	if c.Query("all") == "true" && navigation.Allows(middleware.RoleFrom(c), navigation.Reports) {
		activeOnly = false
	}

	services, err := h.repo.List(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var in catalog.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("service", "create")
	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var patch catalog.ServicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s, err := h.repo.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("service", "update")
	httpresp.OK(c, s)
}
