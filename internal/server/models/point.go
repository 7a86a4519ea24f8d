package models

import "time"

// KnowledgePoint is a row of the knowledge_point table. OwnerID references
// user_login; CreateTime is set once on insert and never updated.
type KnowledgePoint struct {
	KpID       int64
	OwnerID    int64
	Subject    string
	PointName  string
	Category   string
	Importance string
	Difficulty string
	ExamPoints string
	Content    string
	CreateTime time.Time
	UpdateTime time.Time
}
