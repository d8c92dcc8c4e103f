package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
)

// maxImageUpload caps recipe photo uploads at 5 MiB.
const maxImageUpload = 5 << 20

type RecipeHandler struct {
	recipeService *service.RecipeService
	imageService  *service.ImageService
	authService   *service.AuthService
}

// NewRecipeHandler creates the handler. imageService may be nil when no
// object storage is configured; the upload route then answers 503.
func NewRecipeHandler(recipeService *service.RecipeService, imageService *service.ImageService, authService *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
		authService:   authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.ToggleFavorite)
		recipes.POST("/:id/image", middleware.AuthMiddleware(h.authService), h.UploadImage)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := types.RecipeFilter(c.DefaultQuery("filter", string(types.FilterAll)))
	currentUser := middleware.CurrentUser(c)

	items, err := h.recipeService.List(c.Request.Context(), filter, c.Query("q"), currentUser)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": items})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	canEdit, err := h.recipeService.CanEdit(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe, "can_edit": canEdit})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), &input, *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), id, &input, *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), id, *userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted successfully", "id": id})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	favorited, err := h.recipeService.ToggleFavorite(c.Request.Context(), id, *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUser(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	// Verify ownership before touching S3 so rejected uploads leave no
	// orphaned objects behind.
	canEdit, err := h.recipeService.CanEdit(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canEdit {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to modify this resource"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUpload+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	if len(data) > maxImageUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 5MB limit"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PNG and JPEG images are supported"})
		return
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	if err := h.recipeService.SetImageURL(c.Request.Context(), id, url, *userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return 0, false
	}
	return uint(id), true
}
