package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/types"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// Update overwrites the profile fields a user may edit. Nil pointers leave
// the corresponding column alone.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) error {
	updates := map[string]interface{}{"name": req.Name}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.AIContext != nil {
		updates["ai_context"] = *req.AIContext
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// AIContext returns the user's free-text generation preference string.
// Missing users yield an empty context rather than an error so the
// generation pipeline never fails on profile lookups.
func (s *ProfileService) AIContext(ctx context.Context, userID uuid.UUID) string {
	var user models.User
	if err := s.db.WithContext(ctx).Select("ai_context").First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}
	return user.AIContext
}
