package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

type Recipe struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Ingredients  string          `gorm:"type:text;not null" json:"ingredients"`
	Instructions string          `gorm:"type:text;not null" json:"instructions"`
	IsPublic     bool            `gorm:"not null;default:true" json:"is_public"`
	ImageURL     string          `gorm:"size:255" json:"image_url"`
	Embedding    pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	CreatedByID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy    *User           `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
}
