package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/types"
)

// RecipeService owns every read and write against the recipe catalog and
// enforces the per-user visibility rules: public recipes are readable by
// anyone, private ones only by their creator, and all mutations are
// restricted to the creator. currentUser is always an explicit parameter;
// nil means the caller is unauthenticated.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List returns the catalog slice selected by filter, newest first, each
// item annotated with the caller's favorite state.
//
// Unauthenticated callers always get the public slice with is_favorite
// false, whatever filter says. The favorites filter has inner-join
// semantics: a favorite on a recipe that has since gone private still
// shows up.
func (s *RecipeService) List(ctx context.Context, filter types.RecipeFilter, search string, currentUser *uuid.UUID) ([]types.RecipeListItem, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if currentUser == nil {
		query = query.Where("is_public = ?", true)
	} else {
		switch filter {
		case types.FilterMine:
			query = query.Where("created_by_id = ?", *currentUser)
		case types.FilterFavorites:
			query = query.Joins(
				"JOIN favorite_recipes ON favorite_recipes.recipe_id = recipes.id AND favorite_recipes.user_id = ?",
				*currentUser,
			)
		default:
			query = query.Where("is_public = ? OR created_by_id = ?", true, *currentUser)
		}
	}

	if search != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(search) + "%"
			query = query.
				Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like).
				Order("recipes.created_at DESC, recipes.id ASC")
		}
	} else {
		// Qualified because the favorites join brings its own created_at.
		query = query.Order("recipes.created_at DESC, recipes.id ASC")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	favorites, err := s.favoriteSet(ctx, currentUser)
	if err != nil {
		return nil, err
	}

	items := make([]types.RecipeListItem, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, types.RecipeListItem{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			IsPublic:    r.IsPublic,
			ImageURL:    r.ImageURL,
			CreatedByID: r.CreatedByID,
			CreatedAt:   r.CreatedAt,
			IsFavorite:  favorites[r.ID],
		})
	}
	return items, nil
}

// favoriteSet loads the caller's favorited recipe ids in one query.
func (s *RecipeService) favoriteSet(ctx context.Context, currentUser *uuid.UUID) (map[uint]bool, error) {
	set := make(map[uint]bool)
	if currentUser == nil {
		return set, nil
	}

	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.FavoriteRecipe{}).
		Where("user_id = ?", *currentUser).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Get returns a recipe the caller is allowed to see. A private recipe
// owned by someone else reads the same as a missing one.
func (s *RecipeService) Get(ctx context.Context, id uint, currentUser *uuid.UUID) (*models.Recipe, error) {
	query := s.db.WithContext(ctx)
	if currentUser == nil {
		query = query.Where("id = ? AND is_public = ?", id, true)
	} else {
		query = query.Where("id = ? AND (is_public = ? OR created_by_id = ?)", id, true, *currentUser)
	}

	var recipe models.Recipe
	if err := query.First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) Create(ctx context.Context, input *types.RecipeInput, ownerID uuid.UUID) (*models.Recipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		IsPublic:     input.IsPublic,
		ImageURL:     input.ImageURL,
		Embedding:    GenerateEmbedding(input.Title + " " + input.Description),
		CreatedByID:  ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update overwrites the editable fields of a recipe the caller owns.
// Ownership and id never change.
func (s *RecipeService) Update(ctx context.Context, id uint, input *types.RecipeInput, callerID uuid.UUID) (*models.Recipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, id, callerID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        input.Title,
		"description":  input.Description,
		"ingredients":  input.Ingredients,
		"instructions": input.Instructions,
		"is_public":    input.IsPublic,
		"image_url":    input.ImageURL,
		"embedding":    GenerateEmbedding(input.Title + " " + input.Description),
	}
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, id uint, callerID uuid.UUID) error {
	if err := s.requireOwnership(ctx, id, callerID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}

// SetImageURL stores an uploaded image location on a recipe the caller owns.
func (s *RecipeService) SetImageURL(ctx context.Context, id uint, imageURL string, callerID uuid.UUID) error {
	if err := s.requireOwnership(ctx, id, callerID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).
		Update("image_url", imageURL).Error
}

// CanEdit reports whether the recipe exists and currentUser created it.
// Unauthenticated callers can never edit.
func (s *RecipeService) CanEdit(ctx context.Context, id uint, currentUser *uuid.UUID) (bool, error) {
	if currentUser == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND created_by_id = ?", id, *currentUser).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleFavorite flips the caller's favorite mark on a recipe and reports
// the resulting state. The delete-then-insert runs in one transaction with
// a do-nothing conflict clause, so two concurrent toggles cannot create a
// duplicate mark.
func (s *RecipeService) ToggleFavorite(ctx context.Context, recipeID uint, userID uuid.UUID) (bool, error) {
	var favorited bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&models.FavoriteRecipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return nil
		}

		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			// Recipe vanished under us; the slot is gone either way.
			return fmt.Errorf("recipe %d: %w", recipeID, ErrNotFound)
		}

		fav := models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
			return err
		}
		favorited = true
		return nil
	})
	return favorited, err
}

// requireOwnership fails closed: ErrNotFound when the recipe is absent,
// ErrForbidden when it belongs to someone else. Nothing is written in
// either case.
func (s *RecipeService) requireOwnership(ctx context.Context, id uint, callerID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id", "created_by_id").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return err
	}
	if recipe.CreatedByID != callerID {
		return fmt.Errorf("recipe %d: %w", id, ErrForbidden)
	}
	return nil
}

func validateRecipeInput(input *types.RecipeInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Ingredients) == "" {
		return fmt.Errorf("ingredients are required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Instructions) == "" {
		return fmt.Errorf("instructions are required: %w", ErrInvalidInput)
	}
	return nil
}
