package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// MealPlanService owns the planner grid. Every query and mutation is
// scoped to the owning user; a mutation that matches no owned row reports
// ErrNotFound without distinguishing "absent" from "someone else's".
type MealPlanService struct {
	db *gorm.DB
}

func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// ListEntries returns the user's entries with start <= date <= end,
// date ascending, with the referenced recipe loaded when still present.
func (s *MealPlanService) ListEntries(ctx context.Context, startDate, endDate string, userID uuid.UUID) ([]models.MealPlanEntry, error) {
	if err := validateDate(startDate); err != nil {
		return nil, err
	}
	if err := validateDate(endDate); err != nil {
		return nil, err
	}

	entries := []models.MealPlanEntry{}
	err := s.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Order("date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntryForSlot returns the user's entry for one (date, mealType) cell.
// Duplicates are possible in principle; the oldest entry wins, matching
// the lookup-or-create convention used by all writers.
func (s *MealPlanService) GetEntryForSlot(ctx context.Context, date, mealType string, userID uuid.UUID) (*models.MealPlanEntry, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	var entry models.MealPlanEntry
	err := s.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ? AND date = ? AND meal_type = ?", userID, date, mealType).
		Order("id ASC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("slot %s/%s: %w", date, mealType, ErrNotFound)
		}
		return nil, err
	}
	return &entry, nil
}

func (s *MealPlanService) CreateEntry(ctx context.Context, date, mealType string, recipeID *uint, ownerID uuid.UUID) (*models.MealPlanEntry, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(mealType) == "" {
		return nil, fmt.Errorf("meal type is required: %w", ErrInvalidInput)
	}

	entry := models.MealPlanEntry{
		UserID:   ownerID,
		Date:     date,
		MealType: mealType,
		RecipeID: recipeID,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry reassigns the recipe reference of an owned entry. Only the
// reference is writable; date and meal type identify the slot and stay put.
func (s *MealPlanService) UpdateEntry(ctx context.Context, id uint, recipeID *uint, callerID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.MealPlanEntry{}).
		Where("id = ? AND user_id = ?", id, callerID).
		Update("recipe_id", recipeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("meal plan entry %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MealPlanService) DeleteEntry(ctx context.Context, id uint, callerID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, callerID).
		Delete(&models.MealPlanEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("meal plan entry %d: %w", id, ErrNotFound)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD: %w", date, ErrInvalidInput)
	}
	return nil
}
