package middleware

import (
	"net/http"
	"strings"

	"jm_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware creates a Gin middleware that requires a valid admin
// session token. There is a single shared admin role, so a valid token is
// sufficient authorization for the whole admin surface.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminUsername", claims.Username)

		c.Next()
	}
}
