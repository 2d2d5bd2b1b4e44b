package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/navigation"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
)

// RequireMenu libera a rota só para papéis cujo menu contém o item.
// Deve vir depois de AuthMiddleware.
func RequireMenu(item navigation.ItemID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !navigation.Allows(RoleFrom(c), item) {
			httperr.Forbidden(c, "forbidden", "Você não tem acesso a esta área.")
			c.Abort()
			return
		}
		c.Next()
	}
}
