package users

import (
	"context"

	"studymate/internal/server/models"
)

// Repository persists login credentials and profile records.
type Repository interface {
	Create(ctx context.Context, login *models.UserLogin) (*models.UserLogin, error)
	GetByUsername(ctx context.Context, username string) (*models.UserLogin, error)

	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error
}
