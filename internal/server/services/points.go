package services

import (
	"context"

	"studymate/internal/common"
	"studymate/internal/server/models"
	"studymate/internal/server/repositories/points"
)

// PointInput carries the editable fields of a knowledge point as received
// from the API.
type PointInput struct {
	Subject    string
	PointName  string
	Category   string
	Importance string
	Difficulty string
	ExamPoints string
	Content    string
}

type PointService struct {
	repo points.Repository
}

func NewPointService(repo points.Repository) *PointService {
	return &PointService{repo: repo}
}

func (s *PointService) validate(input *PointInput) error {
	if input.Subject == "" || input.PointName == "" || input.Category == "" {
		return ErrMissingPoint
	}
	if !oneOf(input.Subject, subjects) {
		return ErrInvalidSubject
	}
	if input.Importance == "" {
		input.Importance = defaultImportance
	} else if !oneOf(input.Importance, importanceOptions) {
		return ErrInvalidImportant
	}
	if input.Difficulty == "" {
		input.Difficulty = defaultDifficulty
	} else if !oneOf(input.Difficulty, difficultyOptions) {
		return ErrInvalidDifficult
	}
	return nil
}

// List returns the owner's points, optionally restricted to one subject.
// The 「全部」 sentinel and the empty string both mean no restriction.
func (s *PointService) List(ctx context.Context, ownerID int64, subject string) ([]models.KnowledgePoint, error) {
	if subject == "全部" {
		subject = ""
	}
	if subject != "" && !oneOf(subject, subjects) {
		return nil, ErrInvalidSubject
	}
	return s.repo.ListByOwner(ctx, ownerID, subject)
}

func (s *PointService) Create(ctx context.Context, ownerID int64, input PointInput) (*models.KnowledgePoint, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	kp := &models.KnowledgePoint{
		OwnerID:    ownerID,
		Subject:    input.Subject,
		PointName:  input.PointName,
		Category:   input.Category,
		Importance: input.Importance,
		Difficulty: input.Difficulty,
		ExamPoints: input.ExamPoints,
		Content:    input.Content,
	}

	return s.repo.Create(ctx, kp)
}

// owned fetches kpID and verifies the caller owns it. A foreign record is
// ErrorForbidden, not ErrorNotFound: the row exists, the caller may not
// touch it.
func (s *PointService) owned(ctx context.Context, kpID, ownerID int64) (*models.KnowledgePoint, error) {
	kp, err := s.repo.Get(ctx, kpID)
	if err != nil {
		return nil, err
	}
	if kp.OwnerID != ownerID {
		return nil, common.ErrorForbidden
	}
	return kp, nil
}

func (s *PointService) Update(ctx context.Context, kpID, ownerID int64, input PointInput) (*models.KnowledgePoint, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	kp, err := s.owned(ctx, kpID, ownerID)
	if err != nil {
		return nil, err
	}

	kp.Subject = input.Subject
	kp.PointName = input.PointName
	kp.Category = input.Category
	kp.Importance = input.Importance
	kp.Difficulty = input.Difficulty
	kp.ExamPoints = input.ExamPoints
	kp.Content = input.Content

	return s.repo.Update(ctx, kp)
}

func (s *PointService) Delete(ctx context.Context, kpID, ownerID int64) error {
	if _, err := s.owned(ctx, kpID, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, kpID)
}

func (s *PointService) Detail(ctx context.Context, kpID, ownerID int64) (*models.KnowledgePoint, error) {
	return s.owned(ctx, kpID, ownerID)
}
