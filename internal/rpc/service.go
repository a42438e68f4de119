package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "hoverboard.auth.AuthService"

// Full method names, as seen by interceptors.
const (
	MethodRegister       = "/" + ServiceName + "/Register"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodSelectUsername = "/" + ServiceName + "/SelectUsername"
	MethodMe             = "/" + ServiceName + "/Me"
	MethodUpdateProfile  = "/" + ServiceName + "/UpdateProfile"
	MethodUploadAvatar   = "/" + ServiceName + "/UploadAvatar"
	MethodPing           = "/" + ServiceName + "/Ping"
)

// AuthServiceServer is implemented by the server.
type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	SelectUsername(context.Context, *SelectUsernameRequest) (*SelectUsernameResponse, error)
	Me(context.Context, *MeRequest) (*AuthResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error)
	UploadAvatar(context.Context, *UploadAvatarRequest) (*UploadAvatarResponse, error)
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// unary builds a method descriptor that decodes Req and dispatches to call,
// running the server interceptor chain when one is installed.
func unary[Req any, Resp any](name string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AuthServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AuthServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AuthServiceServer.Register),
		unary("Login", AuthServiceServer.Login),
		unary("SelectUsername", AuthServiceServer.SelectUsername),
		unary("Me", AuthServiceServer.Me),
		unary("UpdateProfile", AuthServiceServer.UpdateProfile),
		unary("UploadAvatar", AuthServiceServer.UploadAvatar),
		unary("Ping", AuthServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hoverboard/auth",
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}
