package httpapi

import (
	"time"

	"studymate/internal/server/models"
)

const timeLayout = "2006-01-02 15:04:05"

type profileDTO struct {
	ID                  int64   `json:"id"`
	Username            string  `json:"username"`
	Avatar              string  `json:"avatar"`
	Grade               string  `json:"grade"`
	PostgraduateSession string  `json:"postgraduate_session"`
	School              string  `json:"school"`
	Major               string  `json:"major"`
	TargetSchool        string  `json:"target_school"`
	TargetMajor         string  `json:"target_major"`
	TargetScore         float64 `json:"target_score"`
}

// avatarPath turns a storage key into the relative URL the client resolves
// against its base URL. An empty key stays empty: the client falls back to
// the default asset.
func avatarPath(key string) string {
	if key == "" {
		return ""
	}
	return "static/" + key
}

func toProfileDTO(p *models.UserProfile) profileDTO {
	return profileDTO{
		ID:                  p.ID,
		Username:            p.Username,
		Avatar:              avatarPath(p.Avatar),
		Grade:               p.Grade,
		PostgraduateSession: p.PostgraduateSession,
		School:              p.School,
		Major:               p.Major,
		TargetSchool:        p.TargetSchool,
		TargetMajor:         p.TargetMajor,
		TargetScore:         p.TargetScore,
	}
}

type pointDTO struct {
	KpID       int64  `json:"kp_id"`
	OwnerID    int64  `json:"id"`
	Subject    string `json:"subject"`
	PointName  string `json:"point_name"`
	Category   string `json:"category"`
	Importance string `json:"importance"`
	Difficulty string `json:"difficulty"`
	ExamPoints string `json:"exam_points"`
	Content    string `json:"content"`
	CreateTime string `json:"create_time"`
	UpdateTime string `json:"update_time"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func toPointDTO(kp *models.KnowledgePoint) pointDTO {
	return pointDTO{
		KpID:       kp.KpID,
		OwnerID:    kp.OwnerID,
		Subject:    kp.Subject,
		PointName:  kp.PointName,
		Category:   kp.Category,
		Importance: kp.Importance,
		Difficulty: kp.Difficulty,
		ExamPoints: kp.ExamPoints,
		Content:    kp.Content,
		CreateTime: formatTime(kp.CreateTime),
		UpdateTime: formatTime(kp.UpdateTime),
	}
}

func toPointDTOs(points []models.KnowledgePoint) []pointDTO {
	out := make([]pointDTO, 0, len(points))
	for i := range points {
		out = append(out, toPointDTO(&points[i]))
	}
	return out
}
