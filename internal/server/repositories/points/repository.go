package points

import (
	"context"

	"studymate/internal/server/models"
)

// Repository persists knowledge-point records.
type Repository interface {
	// Create inserts kp and fills in the generated kp_id and timestamps.
	Create(ctx context.Context, kp *models.KnowledgePoint) (*models.KnowledgePoint, error)

	// ListByOwner returns the owner's points, optionally restricted to one
	// subject. An empty subject means no restriction.
	ListByOwner(ctx context.Context, ownerID int64, subject string) ([]models.KnowledgePoint, error)

	Get(ctx context.Context, kpID int64) (*models.KnowledgePoint, error)

	// Update rewrites every editable column. create_time is never touched.
	Update(ctx context.Context, kp *models.KnowledgePoint) (*models.KnowledgePoint, error)

	Delete(ctx context.Context, kpID int64) error
}
