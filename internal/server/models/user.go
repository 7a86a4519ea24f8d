// Package models holds the persistence-level records of the server.
package models

// UserLogin is a row of the user_login table. PasswordHash stores the
// bcrypt hash, never the plain password.
type UserLogin struct {
	ID           int64
	Username     string
	PasswordHash string
}

// UserProfile is a row of the user_profile table. The primary key equals
// the user_login id; the row is created together with the login record.
// Avatar holds the object key of the stored image, empty for the default.
type UserProfile struct {
	ID                  int64
	Username            string
	Avatar              string
	Grade               string
	PostgraduateSession string
	School              string
	Major               string
	TargetSchool        string
	TargetMajor         string
	TargetScore         float64
}
