// Package services contains the CLI's application services. This file
// implements the account flow: register, login, username claim, session
// restore and logout, with the session kept in the local database.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/client/client"
	"github.com/dmitrijs2005/hoverboard/internal/client/models"
	"github.com/dmitrijs2005/hoverboard/internal/client/repositories/session"
	"github.com/dmitrijs2005/hoverboard/internal/dbx"
	"github.com/dmitrijs2005/hoverboard/internal/rpc"
)

// ErrSessionExpired means the saved token was rejected by the server.
var ErrSessionExpired = errors.New("session expired, please log in again")

// AuthService defines the account operations of the CLI.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte, fullName string) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	ClaimUsername(ctx context.Context, username string) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db, now: time.Now}
}

func (a *authService) getSessionRepo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

func (a *authService) saveSession(ctx context.Context, resp *rpc.AuthResponse) (*models.Session, error) {
	s := &models.Session{
		AccessToken: resp.AccessToken,
		UserID:      resp.User.ID,
		Email:       resp.User.Email,
		Username:    resp.User.Username,
		SavedAt:     a.now().UTC().Truncate(time.Second),
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return a.getSessionRepo(tx).Save(ctx, s)
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

// Register creates the account on the server and keeps its session.
func (a *authService) Register(ctx context.Context, email string, password []byte, fullName string) (*models.Session, error) {
	resp, err := a.client.Register(ctx, email, string(password), fullName)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return a.saveSession(ctx, resp)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return a.saveSession(ctx, resp)
}

// Restore loads the saved session and checks it with the server. A rejected
// token wipes the session and yields ErrSessionExpired. When the server is
// unreachable the saved session is returned unchecked.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	repo := a.getSessionRepo(a.db)

	s, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	a.client.SetAccessToken(s.AccessToken)

	profile, err := a.client.Me(ctx)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrUnavailable):
		return s, nil
	case errors.Is(err, client.ErrUnauthorized):
		if err := a.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	default:
		return nil, err
	}

	if profile.Username != s.Username {
		if err := repo.SetUsername(ctx, profile.Username); err != nil {
			return nil, err
		}
		s.Username = profile.Username
	}
	return s, nil
}

func (a *authService) ClaimUsername(ctx context.Context, username string) (*models.Session, error) {
	profile, err := a.client.SelectUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("username error: %w", err)
	}

	repo := a.getSessionRepo(a.db)
	if err := repo.SetUsername(ctx, profile.Username); err != nil {
		return nil, err
	}
	return repo.Load(ctx)
}

// Logout forgets the token in memory and on disk. Access tokens are
// stateless, so nothing is sent to the server.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	return a.getSessionRepo(a.db).Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
