// Package models defines server-side records persisted by the repositories
// and the typed inputs used to create and update them.
package models

import "time"

const (
	DefaultAvatarURL = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face"
	LevelBasic       = "Basic"
	LevelPremium     = "Premium"
)

// User is an account. An empty Username means the handle is not claimed yet.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url"`
	Saldo        int64     `json:"saldo"`
	Level        string    `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsActive     bool      `json:"is_active"`
}

// UserProfile is the public view of a User.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	Saldo     int64     `json:"saldo"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Saldo:     u.Saldo,
		Level:     u.Level,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
	}
}

// NeedsUsername reports whether the account still has to claim a handle.
func (u *User) NeedsUsername() bool {
	return u.Username == ""
}

// UserUpdate is a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Apply copies the set fields onto u.
func (p UserUpdate) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}

// Empty reports whether the update changes nothing.
func (p UserUpdate) Empty() bool {
	return p.FullName == nil && p.Bio == nil && p.AvatarURL == nil
}
