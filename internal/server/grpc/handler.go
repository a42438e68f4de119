package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/rpc"
	"github.com/dmitrijs2005/hoverboard/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors onto gRPC codes without leaking internals.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrAccountDisabled),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrUsernameTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrInvalidUsername),
		errors.Is(err, common.ErrorInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	}

	s.logger.Error(ctx, err.Error())
	return status.Error(codes.Internal, "internal error")
}

func authResponse(r *services.AuthResult) *rpc.AuthResponse {
	return &rpc.AuthResponse{
		AccessToken:   r.AccessToken,
		TokenType:     r.TokenType,
		User:          r.User.Profile(),
		NeedsUsername: r.NeedsUsername,
	}
}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthResponse, error) {
	s.logger.Info(ctx, "Registration request")

	res, err := s.users.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", res.User.ID)
	return authResponse(res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	res, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return authResponse(res), nil
}

func (s *GRPCServer) SelectUsername(ctx context.Context, req *rpc.SelectUsernameRequest) (*rpc.SelectUsernameResponse, error) {
	user, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	updated, err := s.users.ClaimUsername(ctx, user.ID, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.SelectUsernameResponse{Message: "Username set successfully", User: updated.Profile()}, nil
}

// Me returns the caller's profile with an empty AccessToken.
func (s *GRPCServer) Me(ctx context.Context, _ *rpc.MeRequest) (*rpc.AuthResponse, error) {
	user, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	return &rpc.AuthResponse{
		TokenType:     common.TokenType,
		User:          user.Profile(),
		NeedsUsername: user.NeedsUsername(),
	}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.ProfileResponse, error) {
	user, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	updated, err := s.users.UpdateProfile(ctx, user.ID, req.Update)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.ProfileResponse{User: updated.Profile()}, nil
}

// UploadAvatar presigns a PUT for a new avatar image. The profile is not
// touched; the client sets avatar_url once the upload succeeded.
func (s *GRPCServer) UploadAvatar(ctx context.Context, _ *rpc.UploadAvatarRequest) (*rpc.UploadAvatarResponse, error) {
	user, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	if s.media == nil {
		return nil, status.Error(codes.Unavailable, "media storage is not configured")
	}

	ticket, err := s.media.PresignUpload(ctx, user.ID, services.MediaAvatar)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &rpc.UploadAvatarResponse{
		StorageKey: ticket.StorageKey,
		UploadURL:  ticket.UploadURL,
		PublicURL:  ticket.PublicURL,
	}, nil
}

func (s *GRPCServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("OK"), nil
}
