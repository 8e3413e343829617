package auth

import (
	"net/http"
	"strings"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/repo"

	"github.com/gin-gonic/gin"
)

const contextKeyUser = "auth_user"

// UserFromContext returns the authenticated user set by RequireAuth.
func UserFromContext(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// BearerToken extracts the token from the Authorization header, or from the
// "token" query parameter as a fallback for websocket upgrades, where
// browsers cannot set headers.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Query("token")
}

// RequireAuth returns a middleware that verifies the bearer token and loads
// the matching user into the request context. Missing or invalid tokens get
// a 401; a token for a user that no longer exists is treated the same way.
func RequireAuth(tokens *TokenManager, users repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "authorization required"})
			return
		}
		userID, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}
		c.Set(contextKeyUser, u)
		c.Next()
	}
}
