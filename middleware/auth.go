package middleware

import (
	"net/http"
	"strings"

	userRepo "grandstay/database/repository/user"
	"grandstay/models"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID is the gin context key carrying the authenticated user's id.
	ContextUserID = "userID"
	// ContextRole is the gin context key carrying the authenticated user's role.
	ContextRole = "role"
	// ContextUser is the gin context key carrying the full user document.
	ContextUser = "currentUser"

	authCookieName = "auth_token"
)

// AuthRequired validates the bearer token (header or cookie), resolves the
// account by the token's stored hash so signed-out and blocked sessions fail,
// and seeds the request context with the caller's identity.
func AuthRequired(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing authentication token")
			c.Abort()
			return
		}

		if _, _, err := utils.ExtractClaims(token); err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
			c.Abort()
			return
		}

		// The persisted hash is the source of truth: signout and password
		// resets clear it, invalidating tokens that are otherwise still valid.
		u, err := users.GetByTokenHash(utils.HashToken(token))
		if err != nil || u == nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "session is no longer valid")
			c.Abort()
			return
		}
		if u.Blocked {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "account is blocked")
			c.Abort()
			return
		}

		c.Set(ContextUserID, u.ID)
		c.Set(ContextRole, u.Role)
		c.Set(ContextUser, u)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// CurrentUser returns the authenticated user seeded by AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// CurrentUserID returns the authenticated user's id, or "" when unauthenticated.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
