package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"studymate/internal/client/api"
	"studymate/internal/client/models"
)

// ProfileService loads and saves the user record of the current session.
type ProfileService interface {
	Load(ctx context.Context, userID int64) (*models.UserProfile, error)

	// Save submits the whole form (plus the optional new avatar) as one
	// multipart update, then reloads the record from scratch.
	Save(ctx context.Context, userID int64, form api.ProfileForm, avatar *api.AvatarFile) (*models.UserProfile, error)

	// ReadAvatarFile reads a locally selected image for preview and upload.
	ReadAvatarFile(path string) (*api.AvatarFile, error)

	// AvatarURL resolves the stored avatar path against the server base URL.
	AvatarURL(path string) string
}

type profileService struct {
	client api.Client
}

func NewProfileService(client api.Client) ProfileService {
	return &profileService{client: client}
}

func (p *profileService) Load(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return p.client.GetProfile(ctx, userID)
}

func (p *profileService) Save(ctx context.Context, userID int64, form api.ProfileForm, avatar *api.AvatarFile) (*models.UserProfile, error) {
	if _, err := p.client.UpdateProfile(ctx, userID, form, avatar); err != nil {
		return nil, err
	}
	// full refetch rather than trusting the update response
	return p.client.GetProfile(ctx, userID)
}

func (p *profileService) ReadAvatarFile(path string) (*api.AvatarFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading avatar file: %w", err)
	}
	return &api.AvatarFile{Name: filepath.Base(path), Content: content}, nil
}

func (p *profileService) AvatarURL(path string) string {
	return p.client.AvatarURL(path)
}
