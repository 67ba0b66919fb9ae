package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/estudiolink/estudio_backend/internal/core/ports/services"
)

// APITokenAuth is a middleware that authenticates requests using API tokens.
// When a valid x-api-key header is present it resolves the owning user and
// marks the request as authenticated so the JWT middleware is skipped.
func APITokenAuth(tokenSvc services.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next() // No api key provided, let it continue to JWT auth
			return
		}

		user, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			c.Next() // Token validation failed, let JWT auth decide
			return
		}

		// Token is valid, set user ID in context and skip JWT auth
		c.Set(string(userIDKey), user.UserID)
		c.Set("authMethod", "api_token")
		c.Next()
	}
}
