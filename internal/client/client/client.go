package client

import (
	"context"

	"github.com/dmitrijs2005/hoverboard/internal/rpc"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

type Client interface {
	Close() error
	SetAccessToken(token string)
	Register(ctx context.Context, email, password, fullName string) (*rpc.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*rpc.AuthResponse, error)
	SelectUsername(ctx context.Context, username string) (*models.UserProfile, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.UserUpdate) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context) (*rpc.UploadAvatarResponse, error)
	Ping(ctx context.Context) error
}
