package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
)

// Repository persists the single rotating refresh token held per user.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a refresh token repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByToken loads the refresh token row matching the opaque token value.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// Rotate replaces the user's refresh token in place. Users hold at most one
// refresh token, so a fresh login invalidates the previous one.
func (r *Repository) Rotate(ctx context.Context, rt *models.RefreshToken) (*models.RefreshToken, error) {
	var existing models.RefreshToken
	err := r.db.WithContext(ctx).Where("user_id = ?", rt.UserID).First(&existing).Error
	switch {
	case err == nil:
		existing.Token = rt.Token
		existing.ExpiresAt = rt.ExpiresAt
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(rt).Error; err != nil {
			return nil, err
		}
		return rt, nil
	default:
		return nil, err
	}
}

// DeleteByUserID drops the user's refresh token, forcing a fresh login.
func (r *Repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}
