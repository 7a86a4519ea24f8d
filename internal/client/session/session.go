// Package session persists the client's login state between runs.
//
// The whole state is one small JSON file holding the user identifier and the
// access token. An absent file means "not logged in". There is no client-side
// expiry: the token is presented as-is and the server decides whether it is
// still valid.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by Load when no session is stored.
var ErrNoSession = errors.New("no stored session")

// Session is the persisted login state.
type Session struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore creates a store over an explicit file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore places the session file under the user config directory.
func NewDefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, "studymate", "session.json")}, nil
}

// Save writes the session, creating the parent directory when needed.
// The file is readable by the owner only.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the stored session, or ErrNoSession when none exists.
// A session without a user id counts as absent.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session file: %w", err)
	}
	if sess.UserID == 0 {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
