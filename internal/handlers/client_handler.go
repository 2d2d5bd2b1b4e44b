package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/client"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/metrics"
)

type ClientHandler struct {
	repo    client.Repository
	metrics metrics.Recorder
}

func NewClientHandler(repo client.Repository, rec metrics.Recorder) *ClientHandler {
	return &ClientHandler{repo: repo, metrics: rec}
}

// ======================================================
// LIST
// ======================================================

// List devolve todos os clientes; ?query= filtra a lista já carregada
// (nome, e-mail ou placa), do mesmo jeito que a tela faz.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.repo.List(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, client.Filter(clients, c.Query("query")))
}

func (h *ClientHandler) Get(c *gin.Context) {
	cl, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, cl)
}

// ======================================================
// WRITE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var in client.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("client", "create")
	httpresp.Created(c, created)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var p client.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("client", "update")
	httpresp.OK(c, updated)
}

// Delete: veículos e agendamentos saem junto, pelo banco.
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("client", "delete")
	httpresp.NoContent(c)
}

// ======================================================
// VEHICLES
// ======================================================

func (h *ClientHandler) AddVehicle(c *gin.Context) {
	var in client.VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	v, err := h.repo.AddVehicle(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("vehicle", "create")
	httpresp.Created(c, v)
}

func (h *ClientHandler) RemoveVehicle(c *gin.Context) {
	if err := h.repo.RemoveVehicle(c.Request.Context(), c.Param("id"), c.Param("vehicleId")); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("vehicle", "delete")
	httpresp.NoContent(c)
}
