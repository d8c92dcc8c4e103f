package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/service"
)

// respondError maps the service error taxonomy onto HTTP statuses. The
// error text itself is returned only for client-class failures; server
// failures get a generic message so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to modify this resource"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrModelLoading):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI model is loading, please try again in a moment"})
	case errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reach the generation service"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
