package middleware

import (
	"net/http"

	"grandstay/models"
	"grandstay/services/access"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the role capability table.
func RequirePermission(action access.Action, resource access.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
			c.Abort()
			return
		}
		if !access.HasPermission(u.Role, action, resource) {
			utils.JSONError(c, http.StatusForbidden, "Forbidden",
				"your role does not permit this operation")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route on an explicit role list. Used for the few
// operations tied to a specific role rather than a capability.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
			c.Abort()
			return
		}
		if !allowed[u.Role] {
			utils.JSONError(c, http.StatusForbidden, "Forbidden",
				"your role does not permit this operation")
			c.Abort()
			return
		}
		c.Next()
	}
}
