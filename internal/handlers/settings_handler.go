package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/catalog"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/middleware"
)

type SettingsHandler struct {
	repo  catalog.SettingRepository
	audit audit.Sink
}

func NewSettingsHandler(repo catalog.SettingRepository, sink audit.Sink) *SettingsHandler {
	return &SettingsHandler{repo: repo, audit: sink}
}

// Get devolve todas as chaves conhecidas; as nunca gravadas vêm vazias.
func (h *SettingsHandler) Get(c *gin.Context) {
	stored, err := h.repo.All(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make(map[string]string, len(catalog.SettingKeys))
	for _, k := range catalog.SettingKeys {
		out[k] = stored[k]
	}
	httpresp.OK(c, out)
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	keys := make([]string, 0, len(values))
	for k, v := range values {
		if !catalog.IsSettingKey(k) {
			httperr.FromError(c, httperr.Validation(k, "is not a known setting"))
			return
		}
		values[k] = strings.TrimSpace(v)
		keys = append(keys, k)
	}

	if err := h.repo.Put(c.Request.Context(), values); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.UserIDFrom(c),
		Action:   "settings_updated",
		Entity:   "setting",
		Metadata: map[string]any{"keys": keys},
	})

	h.Get(c)
}
