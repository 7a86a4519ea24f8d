// Package services implements the application logic behind the HTTP API.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studymate/internal/common"
	"studymate/internal/dbx"
	"studymate/internal/server/auth"
	"studymate/internal/server/config"
	"studymate/internal/server/models"
	"studymate/internal/server/repositories/users"
	"studymate/internal/server/storage"
)

// ProfileUpdate carries the editable profile fields of one update request.
// Username is accepted in the form but never written: it is fixed at
// registration.
type ProfileUpdate struct {
	Grade               string
	PostgraduateSession string
	School              string
	Major               string
	TargetSchool        string
	TargetMajor         string
	TargetScore         float64
}

// AvatarUpload is a new avatar image received with a profile update.
type AvatarUpload struct {
	FileName string
	Content  []byte
}

type UserService struct {
	db            *sql.DB
	usersRepoFor  func(dbx.DBTX) users.Repository
	store         storage.AvatarStore
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(db *sql.DB, store storage.AvatarStore, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		usersRepoFor:  func(h dbx.DBTX) users.Repository { return users.NewPostgresRepository(h) },
		store:         store,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates the login and the empty profile row in one transaction.
// A duplicate username maps to ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.UserLogin, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	login := &models.UserLogin{Username: username, PasswordHash: hash}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.usersRepoFor(tx)

		login, err = repo.Create(ctx, login)
		if err != nil {
			return err
		}

		return repo.CreateProfile(ctx, &models.UserProfile{ID: login.ID, Username: username})
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return login, nil
}

// Login verifies the credentials and issues a signed token. An unknown
// username and a wrong password produce distinct errors, matching what the
// login screen shows.
func (s *UserService) Login(ctx context.Context, username, password string) (int64, string, error) {
	repo := s.usersRepoFor(s.db)

	login, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, "", ErrUserNotFound
		}
		return 0, "", err
	}

	if !auth.CheckPasswordHash(password, login.PasswordHash) {
		return 0, "", ErrWrongPassword
	}

	token, err := auth.GenerateToken(login.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return 0, "", fmt.Errorf("issuing token: %w", err)
	}

	return login.ID, token, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.usersRepoFor(s.db).GetProfile(ctx, userID)
}

// UpdateProfile validates and applies one full-form update. A new avatar,
// when present, is stored first; the object key replaces the previous one
// on the profile row.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate, avatar *AvatarUpload) (*models.UserProfile, error) {
	if update.Grade != "" && !oneOf(update.Grade, gradeOptions) {
		return nil, ErrInvalidGrade
	}
	if update.TargetScore < 0 || update.TargetScore > 500 {
		return nil, ErrInvalidScore
	}

	repo := s.usersRepoFor(s.db)

	profile, err := repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if avatar != nil {
		key, err := s.store.Save(ctx, avatar.FileName, avatar.Content)
		if err != nil {
			return nil, fmt.Errorf("storing avatar: %w", err)
		}
		profile.Avatar = key
	}

	profile.Grade = update.Grade
	profile.PostgraduateSession = update.PostgraduateSession
	profile.School = update.School
	profile.Major = update.Major
	profile.TargetSchool = update.TargetSchool
	profile.TargetMajor = update.TargetMajor
	profile.TargetScore = update.TargetScore

	if err := repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
