package rest

import (
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/dmitrijs2005/hoverboard/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

type authResponse struct {
	AccessToken   string             `json:"access_token"`
	TokenType     string             `json:"token_type"`
	User          models.UserProfile `json:"user"`
	NeedsUsername bool               `json:"needs_username"`
}

func newAuthResponse(r *services.AuthResult) authResponse {
	return authResponse{
		AccessToken:   r.AccessToken,
		TokenType:     r.TokenType,
		User:          r.User.Profile(),
		NeedsUsername: r.NeedsUsername,
	}
}

type usernameResponse struct {
	Message string             `json:"message"`
	User    models.UserProfile `json:"user"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}
