// Package models holds the CLI's local records.
package models

import "time"

// Session is the signed-in state the CLI keeps between runs.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
	Username    string
	SavedAt     time.Time
}

// NeedsUsername reports whether the account has not claimed a handle yet.
func (s *Session) NeedsUsername() bool {
	return s.Username == ""
}
