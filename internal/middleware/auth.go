package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/types"
)

// TokenValidator is an interface for validating JWT tokens.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware rejects requests without a valid Bearer token and stores
// the caller's identity in the context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, validator)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a valid token
// is present but lets anonymous requests through. Public catalog reads use
// this so visibility filtering can key off the (possibly absent) identity.
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, validator); ok {
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, validator TokenValidator) (*types.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CurrentUser returns the authenticated user id from the context, or nil
// for anonymous requests.
func CurrentUser(c *gin.Context) *uuid.UUID {
	v, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
