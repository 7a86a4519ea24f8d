package services

import (
	"context"
	"errors"

	"studymate/internal/client/api"
	"studymate/internal/client/models"
)

var (
	// ErrMissingPointFields is raised before any request when a required
	// knowledge-point field is empty.
	ErrMissingPointFields = errors.New("请填写科目、知识点名称和分类")

	// ErrInvalidSubject is raised when the subject is not one of the four
	// stored values (the 「全部」 sentinel included).
	ErrInvalidSubject = errors.New("无效的科目")
)

// Filter is the local view restriction over the fetched point list.
// Subject equal to models.SubjectAll means no subject restriction.
type Filter struct {
	Subject    string
	SearchTerm string
}

// Apply returns the subset of all matching the filter. It is a pure
// function: same inputs, same output, no mutation of all.
func (f Filter) Apply(all []models.KnowledgePoint) []models.KnowledgePoint {
	visible := make([]models.KnowledgePoint, 0, len(all))
	for _, kp := range all {
		if f.Subject != "" && f.Subject != models.SubjectAll && kp.Subject != f.Subject {
			continue
		}
		if !kp.MatchesSearch(f.SearchTerm) {
			continue
		}
		visible = append(visible, kp)
	}
	return visible
}

// PointService manages the user's knowledge points. Every mutation is
// followed by a full list refetch in the caller; the service itself keeps
// no state.
type PointService interface {
	List(ctx context.Context, userID int64) ([]models.KnowledgePoint, error)
	Create(ctx context.Context, userID int64, form api.PointForm) (*models.KnowledgePoint, error)
	Update(ctx context.Context, kpID int64, form api.PointForm) (*models.KnowledgePoint, error)
	Delete(ctx context.Context, kpID int64) error
	Detail(ctx context.Context, kpID int64) (*models.KnowledgePoint, error)
}

type pointService struct {
	client api.Client
}

func NewPointService(client api.Client) PointService {
	return &pointService{client: client}
}

func (s *pointService) List(ctx context.Context, userID int64) ([]models.KnowledgePoint, error) {
	return s.client.ListPoints(ctx, userID, "")
}

// validateForm applies the client-side required-field checks shared by
// create and edit. Defaults for importance/difficulty are filled in here
// so the server always receives explicit values.
func validateForm(form *api.PointForm) error {
	if form.Subject == "" || form.PointName == "" || form.Category == "" {
		return ErrMissingPointFields
	}
	if !models.ValidSubject(form.Subject) {
		return ErrInvalidSubject
	}
	if form.Importance == "" {
		form.Importance = models.DefaultImportance
	}
	if form.Difficulty == "" {
		form.Difficulty = models.DefaultDifficulty
	}
	return nil
}

func (s *pointService) Create(ctx context.Context, userID int64, form api.PointForm) (*models.KnowledgePoint, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}
	return s.client.CreatePoint(ctx, userID, form)
}

func (s *pointService) Update(ctx context.Context, kpID int64, form api.PointForm) (*models.KnowledgePoint, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}
	return s.client.UpdatePoint(ctx, kpID, form)
}

func (s *pointService) Delete(ctx context.Context, kpID int64) error {
	return s.client.DeletePoint(ctx, kpID)
}

func (s *pointService) Detail(ctx context.Context, kpID int64) (*models.KnowledgePoint, error) {
	return s.client.GetPointDetail(ctx, kpID)
}
