package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profileService.Update(c.Request.Context(), *userID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}
