package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeFilter selects which slice of the catalog a list call returns.
type RecipeFilter string

const (
	FilterAll       RecipeFilter = "all"
	FilterFavorites RecipeFilter = "favorites"
	FilterMine      RecipeFilter = "mine"
)

// RecipeListItem is a recipe annotated with the caller's favorite state.
type RecipeListItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	ImageURL    string    `json:"image_url"`
	CreatedByID uuid.UUID `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsFavorite  bool      `json:"is_favorite"`
}

// RecipeInput carries the writable recipe fields for create and update.
type RecipeInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	IsPublic     bool   `json:"is_public"`
	ImageURL     string `json:"image_url"`
}

// RecipeDraft is the structured payload the generation upstream produces.
// It is never persisted directly; the caller submits it back through the
// normal create path.
type RecipeDraft struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	MealType     string `json:"meal_type,omitempty"`
}
