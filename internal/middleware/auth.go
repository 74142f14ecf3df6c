package middleware

import (
	"net/http"
	"strings"

	"github.com/michalkopec1981/saper/internal/services"

	"github.com/gin-gonic/gin"
)

// HostAuth validates the host JWT and stores the acting event id.
func HostAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		eventID, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("event_id", eventID)
		c.Next()
	}
}

// SuperhostAuth guards the administrative endpoints with a shared key.
func SuperhostAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Superhost-Key")
		if provided == "" || provided != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid superhost key"})
			return
		}
		c.Next()
	}
}
