// Package grpc exposes the account API over gRPC for the command-line client.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/hoverboard/internal/logging"
	"github.com/dmitrijs2005/hoverboard/internal/rpc"
	"github.com/dmitrijs2005/hoverboard/internal/server/auth"
	"github.com/dmitrijs2005/hoverboard/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Presigner issues upload tickets for user media.
type Presigner interface {
	PresignUpload(ctx context.Context, userID, kind string) (*services.UploadTicket, error)
}

type GRPCServer struct {
	address  string
	users    *services.UserService
	media    Presigner
	resolver *auth.IdentityResolver
	logger   logging.Logger
	health   *health.Server
}

// NewGRPCServer builds the server. media may be nil, in which case
// UploadAvatar answers Unavailable.
func NewGRPCServer(a string, l logging.Logger, us *services.UserService, resolver *auth.IdentityResolver, media Presigner) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		media:    media,
		resolver: resolver,
		health:   health.NewServer(),
	}
}

// newServer builds the gRPC server with all services registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))

	rpc.RegisterAuthServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
