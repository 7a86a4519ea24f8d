package users

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

func (r *PostgresRepository) Create(ctx context.Context, login *models.UserLogin) (*models.UserLogin, error) {
	query :=
		`INSERT INTO user_login (username, password)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, login.Username, login.PasswordHash).Scan(&login.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return login, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.UserLogin, error) {
	// The login lookup folds case on both sides; stored usernames keep the
	// casing they were registered with.
	query :=
		`SELECT id, username, password FROM user_login
		 WHERE lower(username) = lower($1)
		 `

	login := &models.UserLogin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&login.ID, &login.Username, &login.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return login, nil
}

func (r *PostgresRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	query :=
		`INSERT INTO user_profile (id, username, avatar, grade, postgraduate_session, school, major, target_school, target_major, target_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Username, profile.Avatar, profile.Grade, profile.PostgraduateSession,
		profile.School, profile.Major, profile.TargetSchool, profile.TargetMajor, profile.TargetScore)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query :=
		`SELECT id, username, avatar, grade, postgraduate_session, school, major, target_school, target_major, target_score
		 FROM user_profile
		 WHERE id = $1
		 `

	profile := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.Username, &profile.Avatar, &profile.Grade, &profile.PostgraduateSession,
		&profile.School, &profile.Major, &profile.TargetSchool, &profile.TargetMajor, &profile.TargetScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	query :=
		`UPDATE user_profile
		 SET avatar = $2, grade = $3, postgraduate_session = $4, school = $5, major = $6,
		     target_school = $7, target_major = $8, target_score = $9
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Avatar, profile.Grade, profile.PostgraduateSession,
		profile.School, profile.Major, profile.TargetSchool, profile.TargetMajor, profile.TargetScore)
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
