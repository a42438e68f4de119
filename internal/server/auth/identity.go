package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

// TokenValidator is the part of TokenService the resolver needs.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// UserFinder looks users up by ID.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// IdentityResolver turns a bearer token into the user it was issued for.
// It fails closed: bad tokens and vanished users both yield common.ErrorUnauthorized.
type IdentityResolver struct {
	tokens TokenValidator
	users  UserFinder
}

func NewIdentityResolver(tokens TokenValidator, users UserFinder) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// Resolve accepts the raw token or an "Authorization: Bearer ..." value.
// The active flag is not checked here; it is enforced at login.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	token = StripBearer(token)
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	subjectID, err := r.tokens.Validate(token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := r.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error resolving identity: %w", err)
	}

	return user, nil
}

// StripBearer removes a case-insensitive "Bearer " prefix and surrounding spaces.
func StripBearer(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "bearer") {
		return ""
	}
	if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
		v = strings.TrimSpace(v[7:])
	}
	return v
}
