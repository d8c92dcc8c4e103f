package models

import (
	"time"

	"github.com/google/uuid"
)

// MealPlanEntry is one cell of the weekly planner grid. Date is a plain
// YYYY-MM-DD calendar string so slot matching never depends on timezones.
// There is intentionally no unique constraint on (user, date, meal type);
// callers that want one-entry-per-slot go through lookup-or-create.
type MealPlanEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Date      string    `gorm:"size:10;not null;index" json:"date"`
	MealType  string    `gorm:"size:50;not null" json:"meal_type"`
	RecipeID  *uint     `gorm:"index" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plan_entries"
}
