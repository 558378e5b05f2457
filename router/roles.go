package router

import (
	"net/http"

	"ecclesia/authz"
	"ecclesia/controllers"

	"github.com/gin-gonic/gin"
)

// RequireRole blocks access when the principal's role is not in the required
// set. Papel vem do token e é o gate mais grosso e mais estrito: sem I/O,
// sem fallback, sem leniência. Independente de permissões e features, então
// compõe com qualquer um dos outros gates.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := controllers.GetPrincipal(c)
		if !ok {
			controllers.RespondDenial(c, http.StatusUnauthorized, authz.AuthenticationRequired())
			c.Abort()
			return
		}

		for _, role := range roles {
			if p.Role == role {
				c.Next()
				return
			}
		}

		controllers.RespondDenial(c, http.StatusForbidden, authz.InsufficientRole(roles, p.Role))
		c.Abort()
	}
}
