package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
)

type MealPlanHandler struct {
	mealPlanService *service.MealPlanService
	authService     *service.AuthService
}

func NewMealPlanHandler(mealPlanService *service.MealPlanService, authService *service.AuthService) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
		authService:     authService,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/meal-plan")
	plan.Use(middleware.AuthMiddleware(h.authService))
	{
		plan.GET("", h.ListEntries)
		plan.POST("", h.CreateEntry)
		plan.PUT("/:id", h.UpdateEntry)
		plan.DELETE("/:id", h.DeleteEntry)
	}
}

func (h *MealPlanHandler) ListEntries(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required"})
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entries, err := h.mealPlanService.ListEntries(c.Request.Context(), startDate, endDate, *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *MealPlanHandler) CreateEntry(c *gin.Context) {
	var req types.CreateMealPlanEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entry, err := h.mealPlanService.CreateEntry(c.Request.Context(), req.Date, req.MealType, req.RecipeID, *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *MealPlanHandler) UpdateEntry(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	var req types.UpdateMealPlanEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.mealPlanService.UpdateEntry(c.Request.Context(), id, req.RecipeID, *userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal plan entry updated", "id": id})
}

func (h *MealPlanHandler) DeleteEntry(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.mealPlanService.DeleteEntry(c.Request.Context(), id, *userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal plan entry deleted", "id": id})
}

func entryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return 0, false
	}
	return uint(id), true
}
