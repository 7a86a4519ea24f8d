package models

// GradeOptions are the valid values of the profile grade field.
var GradeOptions = []string{"大一", "大二", "大三", "大四", "已毕业"}

// UserProfile is the editable user record. Username is immutable after
// registration; Avatar holds the server-side path of the stored image asset
// and is empty when the user still has the default avatar.
type UserProfile struct {
	ID                  int64   `json:"id"`
	Username            string  `json:"username"`
	Avatar              string  `json:"avatar,omitempty"`
	Grade               string  `json:"grade,omitempty"`
	PostgraduateSession string  `json:"postgraduate_session,omitempty"`
	School              string  `json:"school,omitempty"`
	Major               string  `json:"major,omitempty"`
	TargetSchool        string  `json:"target_school,omitempty"`
	TargetMajor         string  `json:"target_major,omitempty"`
	TargetScore         float64 `json:"target_score,omitempty"`
}

// ValidGrade reports whether g is one of the five grade values.
// The empty string is allowed (grade not chosen yet).
func ValidGrade(g string) bool {
	if g == "" {
		return true
	}
	for _, v := range GradeOptions {
		if v == g {
			return true
		}
	}
	return false
}
