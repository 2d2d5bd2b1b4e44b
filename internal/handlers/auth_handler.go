package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	"github.com/BruksfildServices01/mv-autocenter/internal/auth"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/navigation"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/middleware"
)

type AuthHandler struct {
	auth  *auth.Service
	audit audit.Sink
}

func NewAuthHandler(svc *auth.Service, sink audit.Sink) *AuthHandler {
	return &AuthHandler{auth: svc, audit: sink}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe e-mail e senha.")
		return
	}

	res, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// mesma resposta para e-mail desconhecido e senha errada
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  res.Identity.ID,
		Action:   "login",
		Entity:   "session",
		EntityID: res.Identity.ID,
	})

	httpresp.OK(c, gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       res.Identity,
		"menu":       navigation.MenuFor(res.Identity.Role),
	})
}

// Logout é idempotente: sessão já encerrada também responde 204.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.SessionKeyFrom(c)); err != nil {
		httperr.FromError(c, httperr.Persistence("delete session", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID: middleware.UserIDFrom(c),
		Action:  "logout",
		Entity:  "session",
	})

	c.Status(http.StatusNoContent)
}
