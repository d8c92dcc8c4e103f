package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
)

// RecipeDrafter is the slice of the LLM service the single-draft route
// needs; tests substitute a stub.
type RecipeDrafter interface {
	GenerateRecipe(ctx context.Context, prompt, aiContext string) (*types.RecipeDraft, error)
}

// AIHandler fronts the generation upstream: a single-recipe draft endpoint
// that fills a form without persisting anything, and a batch endpoint that
// generates and persists a whole plan.
type AIHandler struct {
	drafter        RecipeDrafter
	plannerService *service.PlannerService
	profileService *service.ProfileService
	authService    *service.AuthService
	rateLimiter    *middleware.RateLimiter
}

func NewAIHandler(
	drafter RecipeDrafter,
	plannerService *service.PlannerService,
	profileService *service.ProfileService,
	authService *service.AuthService,
	rateLimiter *middleware.RateLimiter,
) *AIHandler {
	return &AIHandler{
		drafter:        drafter,
		plannerService: plannerService,
		profileService: profileService,
		authService:    authService,
		rateLimiter:    rateLimiter,
	}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	ai.Use(middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		ai.Use(h.rateLimiter.Middleware())
	}
	{
		ai.POST("/generate-recipe", h.GenerateRecipe)
		ai.POST("/generate-meal-plan", h.GenerateMealPlan)
	}
}

// GenerateRecipe drafts one recipe for form pre-fill. Nothing is persisted
// here; the user reviews the draft and submits it through POST /recipes.
func (h *AIHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	if h.drafter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation service is not configured"})
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	aiContext := h.profileService.AIContext(c.Request.Context(), *userID)

	draft, err := h.drafter.GenerateRecipe(c.Request.Context(), req.Prompt, aiContext)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": draft.Description,
		"recipe":  draft,
	})
}

func (h *AIHandler) GenerateMealPlan(c *gin.Context) {
	var req types.GenerateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.plannerService.GeneratePlan(c.Request.Context(), *userID, req.StartDate, req.EndDate, req.Preferences)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Generated meal plan for %d days", result.Days),
		"result":  result,
	})
}
