package models

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteRecipe is a bare membership fact: user X favorited recipe Y.
type FavoriteRecipe struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uint      `gorm:"primaryKey" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}
