package services

import (
	"context"

	"studymate/internal/client/api"
	"studymate/internal/client/models"
)

// stubClient is an in-memory api.Client recording the calls it receives.
type stubClient struct {
	loginResult    *api.LoginResult
	loginErr       error
	registerResult *api.RegisterResult
	registerErr    error
	points         []models.KnowledgePoint
	profile        *models.UserProfile

	loginCalls    int
	registerCalls int
	listCalls     int
	createCalls   int
	updateCalls   int
	deleteCalls   int
	token         string

	lastOwnerID int64
	lastKpID    int64
	lastForm    api.PointForm
}

func (s *stubClient) Ping(ctx context.Context) error { return nil }

func (s *stubClient) Login(ctx context.Context, username, password string) (*api.LoginResult, error) {
	s.loginCalls++
	return s.loginResult, s.loginErr
}

func (s *stubClient) Register(ctx context.Context, username, password string) (*api.RegisterResult, error) {
	s.registerCalls++
	return s.registerResult, s.registerErr
}

func (s *stubClient) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.profile, nil
}

func (s *stubClient) UpdateProfile(ctx context.Context, userID int64, form api.ProfileForm, avatar *api.AvatarFile) (*models.UserProfile, error) {
	return s.profile, nil
}

func (s *stubClient) ListPoints(ctx context.Context, userID int64, subject string) ([]models.KnowledgePoint, error) {
	s.listCalls++
	return s.points, nil
}

func (s *stubClient) CreatePoint(ctx context.Context, ownerID int64, form api.PointForm) (*models.KnowledgePoint, error) {
	s.createCalls++
	s.lastOwnerID = ownerID
	s.lastForm = form
	kp := models.KnowledgePoint{KpID: int64(len(s.points) + 1), OwnerID: ownerID,
		Subject: form.Subject, PointName: form.PointName, Category: form.Category,
		Importance: form.Importance, Difficulty: form.Difficulty,
		ExamPoints: form.ExamPoints, Content: form.Content}
	s.points = append(s.points, kp)
	return &kp, nil
}

func (s *stubClient) UpdatePoint(ctx context.Context, kpID int64, form api.PointForm) (*models.KnowledgePoint, error) {
	s.updateCalls++
	s.lastKpID = kpID
	s.lastForm = form
	for i, kp := range s.points {
		if kp.KpID == kpID {
			updated := kp
			updated.Subject = form.Subject
			updated.PointName = form.PointName
			updated.Category = form.Category
			updated.Importance = form.Importance
			updated.Difficulty = form.Difficulty
			updated.ExamPoints = form.ExamPoints
			updated.Content = form.Content
			s.points[i] = updated
			return &updated, nil
		}
	}
	return nil, &api.APIError{StatusCode: 404, Detail: "知识点不存在"}
}

func (s *stubClient) DeletePoint(ctx context.Context, kpID int64) error {
	s.deleteCalls++
	s.lastKpID = kpID
	for i, kp := range s.points {
		if kp.KpID == kpID {
			s.points = append(s.points[:i], s.points[i+1:]...)
			return nil
		}
	}
	return &api.APIError{StatusCode: 404, Detail: "知识点不存在"}
}

func (s *stubClient) GetPointDetail(ctx context.Context, kpID int64) (*models.KnowledgePoint, error) {
	for _, kp := range s.points {
		if kp.KpID == kpID {
			return &kp, nil
		}
	}
	return nil, &api.APIError{StatusCode: 404, Detail: "知识点不存在"}
}

func (s *stubClient) SetToken(token string) { s.token = token }

func (s *stubClient) AvatarURL(path string) string {
	if path == "" {
		return ""
	}
	return "http://test" + path
}
