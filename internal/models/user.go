package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored on a user. RoleAdmin is reserved; no access path
// branches on it yet.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ImageURL     string    `gorm:"size:255" json:"image_url"`
	Role         string    `gorm:"not null;default:'USER'" json:"role"`
	AIContext    string    `gorm:"type:text" json:"ai_context"`
}
