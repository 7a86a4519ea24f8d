package services

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymate/internal/common"
	"studymate/internal/dbx"
	"studymate/internal/server/auth"
	"studymate/internal/server/models"
	"studymate/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	logins   map[string]*models.UserLogin
	profiles map[int64]*models.UserProfile

	nextID  int64
	updated *models.UserProfile
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		logins:   map[string]*models.UserLogin{},
		profiles: map[int64]*models.UserProfile{},
		nextID:   1,
	}
}

func (r *fakeUsersRepo) Create(ctx context.Context, login *models.UserLogin) (*models.UserLogin, error) {
	if _, ok := r.logins[login.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	login.ID = r.nextID
	r.nextID++
	r.logins[login.Username] = login
	return login, nil
}

func (r *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.UserLogin, error) {
	login, ok := r.logins[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return login, nil
}

func (r *fakeUsersRepo) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeUsersRepo) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeUsersRepo) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *profile
	r.profiles[profile.ID] = &cp
	r.updated = &cp
	return nil
}

type fakeStore struct {
	savedName    string
	savedContent []byte
	key          string
}

func (s *fakeStore) Save(ctx context.Context, originalName string, content []byte) (string, error) {
	s.savedName = originalName
	s.savedContent = content
	if s.key == "" {
		s.key = "avatars/2026/1/1/key.png"
	}
	return s.key, nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return nil, "", common.ErrorNotFound
}

func newUserService(t *testing.T, db *sql.DB, repo users.Repository, store *fakeStore) *UserService {
	t.Helper()
	return &UserService{
		db:            db,
		usersRepoFor:  func(dbx.DBTX) users.Repository { return repo },
		store:         store,
		jwtSecret:     []byte("test-secret"),
		tokenValidity: time.Hour,
	}
}

func TestRegister_CreatesLoginAndProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUsersRepo()
	svc := newUserService(t, db, repo, &fakeStore{})

	login, err := svc.Register(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), login.ID)
	assert.NotEqual(t, "pw123", login.PasswordHash)

	profile, ok := repo.profiles[login.ID]
	require.True(t, ok, "profile row missing")
	assert.Equal(t, "alice", profile.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeUsersRepo()
	svc := newUserService(t, db, repo, &fakeStore{})

	_, err = svc.Register(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newUserService(t, nil, newFakeUsersRepo(), &fakeStore{})

	_, _, err := svc.Login(context.Background(), "ghost", "pw")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUsersRepo()
	hash, err := auth.HashPassword("right")
	require.NoError(t, err)
	repo.logins["alice"] = &models.UserLogin{ID: 7, Username: "alice", PasswordHash: hash}

	svc := newUserService(t, nil, repo, &fakeStore{})

	_, _, err = svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	repo := newFakeUsersRepo()
	hash, err := auth.HashPassword("right")
	require.NoError(t, err)
	repo.logins["alice"] = &models.UserLogin{ID: 7, Username: "alice", PasswordHash: hash}

	svc := newUserService(t, nil, repo, &fakeStore{})

	userID, token, err := svc.Login(context.Background(), "alice", "right")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	gotID, err := auth.GetUserIDFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), gotID)
}

func TestUpdateProfile_Validation(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.profiles[7] = &models.UserProfile{ID: 7, Username: "alice"}
	svc := newUserService(t, nil, repo, &fakeStore{})

	_, err := svc.UpdateProfile(context.Background(), 7, ProfileUpdate{Grade: "初一"}, nil)
	require.ErrorIs(t, err, ErrInvalidGrade)

	_, err = svc.UpdateProfile(context.Background(), 7, ProfileUpdate{TargetScore: 501}, nil)
	require.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.UpdateProfile(context.Background(), 7, ProfileUpdate{TargetScore: -1}, nil)
	require.ErrorIs(t, err, ErrInvalidScore)
}

func TestUpdateProfile_StoresAvatarAndFields(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.profiles[7] = &models.UserProfile{ID: 7, Username: "alice", Avatar: "old-key"}
	store := &fakeStore{}
	svc := newUserService(t, nil, repo, store)

	got, err := svc.UpdateProfile(context.Background(), 7, ProfileUpdate{
		Grade:        "大四",
		TargetSchool: "清华大学",
		TargetScore:  380,
	}, &AvatarUpload{FileName: "me.png", Content: []byte("img")})
	require.NoError(t, err)

	assert.Equal(t, "me.png", store.savedName)
	assert.Equal(t, store.key, got.Avatar)
	assert.Equal(t, "大四", got.Grade)
	assert.Equal(t, 380.0, got.TargetScore)
	assert.Equal(t, "alice", got.Username)
	require.NotNil(t, repo.updated)
}

func TestUpdateProfile_NoAvatarKeepsOldKey(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.profiles[7] = &models.UserProfile{ID: 7, Username: "alice", Avatar: "old-key"}
	svc := newUserService(t, nil, repo, &fakeStore{})

	got, err := svc.UpdateProfile(context.Background(), 7, ProfileUpdate{Grade: "大三"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "old-key", got.Avatar)
}
