package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/backend/internal/types"
)

// MealTypes are the slots the planner fills for each day of a generated
// plan, in serving order.
var MealTypes = []string{"Breakfast", "Lunch", "Dinner"}

const maxPlanDays = 14

// RecipeGenerator is the slice of the LLM service the planner needs.
type RecipeGenerator interface {
	GenerateMealPlanRecipes(ctx context.Context, days int, mealTypes []string, preferences string) ([]types.RecipeDraft, error)
}

// PlannerService drives the batch pipeline: ask the generator for one
// draft per (date, meal type) slot, persist each draft as a private recipe
// owned by the requesting user, and wire it into the planner grid. Slots
// are attempted independently; one failed slot never aborts the rest.
type PlannerService struct {
	recipes   *RecipeService
	mealplan  *MealPlanService
	generator RecipeGenerator
}

func NewPlannerService(recipes *RecipeService, mealplan *MealPlanService, generator RecipeGenerator) *PlannerService {
	return &PlannerService{
		recipes:   recipes,
		mealplan:  mealplan,
		generator: generator,
	}
}

// PlanResult summarizes a generation run.
type PlanResult struct {
	Days    int `json:"days"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// GeneratePlan fills startDate..endDate (inclusive, at most 14 days) with
// generated meals. If the generator fails nothing is written.
func (s *PlannerService) GeneratePlan(ctx context.Context, userID uuid.UUID, startDate, endDate, preferences string) (*PlanResult, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("no generator configured: %w", ErrUpstream)
	}

	dates, err := planDates(startDate, endDate)
	if err != nil {
		return nil, err
	}

	drafts, err := s.generator.GenerateMealPlanRecipes(ctx, len(dates), MealTypes, preferences)
	if err != nil {
		return nil, err
	}

	result := &PlanResult{Days: len(dates)}
	idx := 0
	for _, date := range dates {
		for _, mealType := range MealTypes {
			if idx >= len(drafts) {
				log.Printf("[Planner] upstream returned %d drafts for %d slots, stopping early", len(drafts), len(dates)*len(MealTypes))
				return result, nil
			}
			draft := drafts[idx]
			idx++

			if err := s.fillSlot(ctx, userID, date, mealType, &draft); err != nil {
				log.Printf("[Planner] failed to fill %s/%s: %v", date, mealType, err)
				result.Failed++
				continue
			}
			result.Created++
		}
	}
	return result, nil
}

// fillSlot persists one draft and points the slot's entry at it,
// reassigning an existing entry rather than stacking a duplicate.
func (s *PlannerService) fillSlot(ctx context.Context, userID uuid.UUID, date, mealType string, draft *types.RecipeDraft) error {
	input := &types.RecipeInput{
		Title:        draft.Title,
		Description:  draft.Description,
		Ingredients:  draft.Ingredients,
		Instructions: draft.Instructions,
		IsPublic:     false,
	}
	if input.Title == "" {
		input.Title = mealType + " Recipe"
	}
	if input.Ingredients == "" {
		input.Ingredients = "No ingredients listed"
	}
	if input.Instructions == "" {
		input.Instructions = "No instructions provided"
	}

	recipe, err := s.recipes.Create(ctx, input, userID)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}

	existing, err := s.mealplan.GetEntryForSlot(ctx, date, mealType, userID)
	switch {
	case err == nil:
		if err := s.mealplan.UpdateEntry(ctx, existing.ID, &recipe.ID, userID); err != nil {
			return fmt.Errorf("update entry: %w", err)
		}
	case errors.Is(err, ErrNotFound):
		if _, err := s.mealplan.CreateEntry(ctx, date, mealType, &recipe.ID, userID); err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
	default:
		return fmt.Errorf("lookup slot: %w", err)
	}
	return nil
}

// planDates expands an inclusive YYYY-MM-DD range into its days.
func planDates(startDate, endDate string) ([]string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("start date %q must be YYYY-MM-DD: %w", startDate, ErrInvalidInput)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("end date %q must be YYYY-MM-DD: %w", endDate, ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date before start date: %w", ErrInvalidInput)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxPlanDays {
		return nil, fmt.Errorf("range spans %d days, maximum is %d: %w", days, maxPlanDays, ErrInvalidInput)
	}

	dates := make([]string, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, nil
}
