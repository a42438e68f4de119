package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/rpc"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userKey ctxKey = "user"

var protectedMethods = map[string]bool{
	rpc.MethodSelectUsername: true,
	rpc.MethodMe:             true,
	rpc.MethodUpdateProfile:  true,
	rpc.MethodUploadAvatar:   true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	user, err := s.resolver.Resolve(ctx, accessToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "could not validate credentials")
		}
		s.logger.Error(ctx, "identity lookup failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}

func userFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}
