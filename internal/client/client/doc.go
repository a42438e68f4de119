// Package client contains the CLI's transport and local storage bootstrap.
//
// GRPCClient talks to the hoverboard account service over gRPC. It keeps the
// current access token and attaches it to every call through a unary
// interceptor, and it maps gRPC status codes onto ErrUnavailable,
// ErrUnauthorized and ErrRejected so callers can use errors.Is.
//
// InitDatabase opens the local SQLite database and applies the embedded
// goose migrations.
package client
