package rpc

import "github.com/dmitrijs2005/hoverboard/internal/server/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken   string             `json:"access_token"`
	TokenType     string             `json:"token_type"`
	User          models.UserProfile `json:"user"`
	NeedsUsername bool               `json:"needs_username"`
}

type SelectUsernameRequest struct {
	Username string `json:"username"`
}

type SelectUsernameResponse struct {
	Message string             `json:"message"`
	User    models.UserProfile `json:"user"`
}

type MeRequest struct{}

type UpdateProfileRequest struct {
	Update models.UserUpdate `json:"update"`
}

type ProfileResponse struct {
	User models.UserProfile `json:"user"`
}

type UploadAvatarRequest struct{}

// UploadAvatarResponse tells the client where to PUT the image bytes.
type UploadAvatarResponse struct {
	StorageKey string `json:"storage_key"`
	UploadURL  string `json:"upload_url"`
	PublicURL  string `json:"public_url"`
}
