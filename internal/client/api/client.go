// Package api implements the REST client for the StudyMate backend.
//
// Every call issues exactly one HTTP request: no retries, no caching, no
// request deduplication. A 2xx response is decoded as JSON; a non-2xx
// response is surfaced as *APIError carrying the server's detail message;
// transport failures are reported as ErrUnavailable.
package api

import (
	"context"

	"studymate/internal/client/models"
)

// LoginResult is the body of a successful POST /login.
// UserID being non-zero is the login success criterion; a 2xx status alone
// does not count as success.
type LoginResult struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	Token   string `json:"token"`
}

// RegisterResult is the body of POST /register. Status must equal "success".
type RegisterResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// ProfileForm carries the editable profile fields of a multipart profile
// update. All values travel as form strings; the server parses and validates.
type ProfileForm struct {
	Username            string
	Grade               string
	PostgraduateSession string
	School              string
	Major               string
	TargetSchool        string
	TargetMajor         string
	TargetScore         string
}

// AvatarFile is a locally selected image to upload with a profile update.
type AvatarFile struct {
	Name    string
	Content []byte
}

// PointForm carries the knowledge-point fields of a create or full-record
// update. The owner id and kp_id never travel inside the form.
type PointForm struct {
	Subject    string `json:"subject"`
	PointName  string `json:"point_name"`
	Category   string `json:"category"`
	Importance string `json:"importance"`
	Difficulty string `json:"difficulty"`
	ExamPoints string `json:"exam_points"`
	Content    string `json:"content"`
}

// Client is the remote API surface used by the application services.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, password string) (*RegisterResult, error)

	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, form ProfileForm, avatar *AvatarFile) (*models.UserProfile, error)

	ListPoints(ctx context.Context, userID int64, subject string) ([]models.KnowledgePoint, error)
	CreatePoint(ctx context.Context, ownerID int64, form PointForm) (*models.KnowledgePoint, error)
	UpdatePoint(ctx context.Context, kpID int64, form PointForm) (*models.KnowledgePoint, error)
	DeletePoint(ctx context.Context, kpID int64) error
	GetPointDetail(ctx context.Context, kpID int64) (*models.KnowledgePoint, error)

	// SetToken installs the bearer token sent with subsequent requests.
	SetToken(token string)

	// AvatarURL resolves a server-side avatar path to an absolute URL.
	AvatarURL(path string) string
}
