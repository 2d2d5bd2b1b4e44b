package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/navigation"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe devolve a identidade da sessão e o menu derivado do papel atual.
func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Faça login para continuar.")
		return
	}

	httpresp.OK(c, gin.H{
		"user": id,
		"menu": navigation.MenuFor(id.Role),
	})
}
