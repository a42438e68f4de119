// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, username claims and
// profile updates, and issues access tokens for the accounts it manages.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/auth"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Auth event outcomes reported to an AuthRecorder.
const (
	OutcomeOK      = "ok"
	OutcomeFailure = "failure"
)

// AuthRecorder receives one event per register, login or claim attempt.
type AuthRecorder interface {
	AuthEvent(event, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) AuthEvent(string, string) {}

// AuthResult is what a successful register or login hands back to the caller.
type AuthResult struct {
	AccessToken   string
	TokenType     string
	User          *models.User
	NeedsUsername bool
}

// UserService provides account operations:
//   - Register: create an account without a username and sign it in
//   - Login: verify credentials and mint an access token
//   - ClaimUsername: bind a unique handle to the signed-in account
//   - Profile / GetByUsername / UpdateProfile: read and edit profiles
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	tokens      *auth.TokenService
	recorder    AuthRecorder
	now         func() time.Time
	newID       func() string
}

// NewUserService wires a UserService. db may be nil for the in-memory backend.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, tokens *auth.TokenService) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		recorder:    nopRecorder{},
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
}

// WithRecorder sets the sink for auth outcome events.
func (s *UserService) WithRecorder(r AuthRecorder) *UserService {
	if r != nil {
		s.recorder = r
	}
	return s
}

func (s *UserService) record(event string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailure
	}
	s.recorder.AuthEvent(event, outcome)
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", common.ErrorInvalidInput)
	}
	return email, nil
}

// Register creates an account with no username yet and returns a token for it.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (res *AuthResult, err error) {
	defer func() { s.record("register", err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorInvalidInput)
	}

	repo := s.repomanager.Users(s.db)

	_, err = repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidInput, err)
	}

	now := s.now()
	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		AvatarURL:    models.DefaultAvatarURL,
		Level:        models.LevelBasic,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.authResult(user)
}

// Login checks the password before the active flag, so a disabled account
// is only revealed to someone who knows its password.
func (s *UserService) Login(ctx context.Context, email, password string) (res *AuthResult, err error) {
	defer func() { s.record("login", err) }()

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, common.ErrAccountDisabled
	}

	return s.authResult(user)
}

func (s *UserService) authResult(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{
		AccessToken:   token,
		TokenType:     common.TokenType,
		User:          user,
		NeedsUsername: user.NeedsUsername(),
	}, nil
}

// IssueToken mints an access token for subjectID without checking credentials.
func (s *UserService) IssueToken(subjectID string) (string, error) {
	return s.tokens.Issue(subjectID)
}

// ClaimUsername binds desired to subjectID. The pre-check gives a friendly
// error in the common case; the store's unique constraint settles races.
func (s *UserService) ClaimUsername(ctx context.Context, subjectID, desired string) (user *models.User, err error) {
	defer func() { s.record("claim_username", err) }()

	if err = auth.ValidateUsername(desired); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	holder, err := repo.GetByUsername(ctx, desired)
	switch {
	case err == nil:
		if holder.ID != subjectID {
			return nil, common.ErrUsernameTaken
		}
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	user, err = repo.SetUsername(ctx, subjectID, desired, s.now())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			return nil, common.ErrUsernameTaken
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error setting username: %w", err)
	}

	return user, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// GetByUsername returns common.ErrorNotFound for an empty or unknown username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByUsername(ctx, username)
}

// UpdateProfile applies upd to the account. An empty update still bumps updated_at.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).Update(ctx, id, upd, s.now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return user, nil
}
