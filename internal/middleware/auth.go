package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	"github.com/BruksfildServices01/mv-autocenter/internal/auth"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/session"
)

const (
	ContextUserID     = "userID"
	ContextUserRole   = "userRole"
	ContextSessionKey = "sessionKey"
	ContextIdentity   = "identity"
)

// AuthMiddleware valida o token e exige que a sessão ainda exista no Store:
// um token de sessão encerrada por logout é recusado.
func AuthMiddleware(tokens *auth.TokenIssuer, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Faça login para continuar.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		id, ok, err := store.Load(c.Request.Context(), claims.SessionKey)
		if err != nil {
			httperr.FromError(c, httperr.Persistence("load session", err))
			c.Abort()
			return
		}
		if !ok || id.ID != claims.UserID {
			httperr.Unauthorized(c, "session_expired", "Sessão encerrada. Faça login novamente.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, id.ID)
		c.Set(ContextUserRole, id.Role)
		c.Set(ContextSessionKey, claims.SessionKey)
		c.Set(ContextIdentity, id)

		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), id.ID))

		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (session.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return session.Identity{}, false
	}
	id, ok := v.(session.Identity)
	return id, ok
}

func UserIDFrom(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func RoleFrom(c *gin.Context) user.Role {
	v, _ := c.Get(ContextUserRole)
	role, _ := v.(user.Role)
	return role
}

func SessionKeyFrom(c *gin.Context) string {
	return c.GetString(ContextSessionKey)
}
