// Package models defines the wire-level data structures exchanged with the
// StudyMate backend.
package models

import "strings"

// SubjectAll is the client-only filter sentinel meaning "no subject
// restriction". It is never a stored subject value and the server rejects it.
const SubjectAll = "全部"

// Subjects are the four stored subject values, in display order.
var Subjects = []string{"数据结构", "计算机组成原理", "操作系统", "计算机网络"}

// ImportanceOptions and DifficultyOptions are the valid enum values for the
// corresponding knowledge-point fields. Both default to 「中」.
var (
	ImportanceOptions = []string{"低", "中", "高", "必考"}
	DifficultyOptions = []string{"易", "较易", "中", "较难", "难"}
)

const (
	DefaultImportance = "中"
	DefaultDifficulty = "中"
)

// KnowledgePoint is a single study-note record owned by one user.
// KpID and CreateTime are server-assigned; OwnerID is set once at creation.
type KnowledgePoint struct {
	KpID       int64  `json:"kp_id"`
	OwnerID    int64  `json:"id"`
	Subject    string `json:"subject"`
	PointName  string `json:"point_name"`
	Category   string `json:"category"`
	Importance string `json:"importance"`
	Difficulty string `json:"difficulty"`
	ExamPoints string `json:"exam_points,omitempty"`
	Content    string `json:"content,omitempty"`
	CreateTime string `json:"create_time,omitempty"`
	UpdateTime string `json:"update_time,omitempty"`
}

// ValidSubject reports whether s is one of the four stored subject values.
// The SubjectAll sentinel is not a valid stored value.
func ValidSubject(s string) bool {
	for _, v := range Subjects {
		if v == s {
			return true
		}
	}
	return false
}

// ColorToken is an abstract presentation color derived from an enum value.
// The CLI maps tokens to terminal colors; unknown values map to ColorGray.
type ColorToken string

const (
	ColorGreen      ColorToken = "green"
	ColorLightGreen ColorToken = "light-green"
	ColorOrange     ColorToken = "orange"
	ColorDeepOrange ColorToken = "deep-orange"
	ColorRed        ColorToken = "red"
	ColorPurple     ColorToken = "purple"
	ColorGray       ColorToken = "gray"
)

// ImportanceColor maps an importance value to its color token.
func ImportanceColor(importance string) ColorToken {
	switch importance {
	case "低":
		return ColorGreen
	case "中":
		return ColorOrange
	case "高":
		return ColorRed
	case "必考":
		return ColorPurple
	default:
		return ColorGray
	}
}

// DifficultyColor maps a difficulty value to its color token.
func DifficultyColor(difficulty string) ColorToken {
	switch difficulty {
	case "易":
		return ColorGreen
	case "较易":
		return ColorLightGreen
	case "中":
		return ColorOrange
	case "较难":
		return ColorDeepOrange
	case "难":
		return ColorRed
	default:
		return ColorGray
	}
}

// ContentPreview returns the first 100 runes of content followed by an
// ellipsis. Shorter content is returned unchanged; empty content gives "".
func ContentPreview(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) <= 100 {
		return content
	}
	return string(runes[:100]) + "..."
}

// MatchesSearch reports whether the point's name or category contains term,
// case-insensitively. An empty term matches everything.
func (kp KnowledgePoint) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(kp.PointName), t) ||
		strings.Contains(strings.ToLower(kp.Category), t)
}
