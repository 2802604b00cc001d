package middleware

import (
	"net/http"
	"strings"

	"osmeet/models"
	"osmeet/services/user"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthUserMiddleware validates the bearer token, checks the session is
// still registered (revocation), and stores the acting user on the context.
func JWTAuthUserMiddleware(users user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || !users.IsSessionActive(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("actor", models.Actor{UserID: u.ID, Admin: u.Admin})
		c.Set("token", token)
		c.Next()
	}
}

// AdminOnly requires an authenticated admin; chain after JWTAuthUserMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || !actor.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// GetActor returns the acting user set by the auth middleware.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, exists := c.Get("actor")
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
