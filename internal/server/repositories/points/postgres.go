package points

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"studymate/internal/common"
	"studymate/internal/dbx"
	"studymate/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, kp *models.KnowledgePoint) (*models.KnowledgePoint, error) {
	query :=
		`INSERT INTO knowledge_point (id, subject, point_name, category, importance, difficulty, exam_points, content)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING kp_id, create_time, update_time
		 `

	err := r.db.QueryRowContext(ctx, query,
		kp.OwnerID, kp.Subject, kp.PointName, kp.Category,
		kp.Importance, kp.Difficulty, kp.ExamPoints, kp.Content).
		Scan(&kp.KpID, &kp.CreateTime, &kp.UpdateTime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return kp, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, subject string) ([]models.KnowledgePoint, error) {
	query :=
		`SELECT kp_id, id, subject, point_name, category, importance, difficulty, exam_points, content, create_time, update_time
		 FROM knowledge_point
		 WHERE id = $1 AND ($2 = '' OR subject = $2)
		 ORDER BY create_time DESC, kp_id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, subject)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.KnowledgePoint{}
	for rows.Next() {
		var kp models.KnowledgePoint
		err := rows.Scan(&kp.KpID, &kp.OwnerID, &kp.Subject, &kp.PointName, &kp.Category,
			&kp.Importance, &kp.Difficulty, &kp.ExamPoints, &kp.Content, &kp.CreateTime, &kp.UpdateTime)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, kp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, kpID int64) (*models.KnowledgePoint, error) {
	query :=
		`SELECT kp_id, id, subject, point_name, category, importance, difficulty, exam_points, content, create_time, update_time
		 FROM knowledge_point
		 WHERE kp_id = $1
		 `

	kp := &models.KnowledgePoint{}
	err := r.db.QueryRowContext(ctx, query, kpID).Scan(
		&kp.KpID, &kp.OwnerID, &kp.Subject, &kp.PointName, &kp.Category,
		&kp.Importance, &kp.Difficulty, &kp.ExamPoints, &kp.Content, &kp.CreateTime, &kp.UpdateTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return kp, nil
}

func (r *PostgresRepository) Update(ctx context.Context, kp *models.KnowledgePoint) (*models.KnowledgePoint, error) {
	query :=
		`UPDATE knowledge_point
		 SET subject = $2, point_name = $3, category = $4, importance = $5,
		     difficulty = $6, exam_points = $7, content = $8, update_time = now()
		 WHERE kp_id = $1
		 RETURNING id, create_time, update_time
		 `

	err := r.db.QueryRowContext(ctx, query,
		kp.KpID, kp.Subject, kp.PointName, kp.Category,
		kp.Importance, kp.Difficulty, kp.ExamPoints, kp.Content).
		Scan(&kp.OwnerID, &kp.CreateTime, &kp.UpdateTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return kp, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, kpID int64) error {
	query := `DELETE FROM knowledge_point WHERE kp_id = $1`

	res, err := r.db.ExecContext(ctx, query, kpID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
