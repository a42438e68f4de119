package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/client/client"
	"github.com/dmitrijs2005/hoverboard/internal/client/models"
	"github.com/dmitrijs2005/hoverboard/internal/client/repositories/session"
	"github.com/dmitrijs2005/hoverboard/internal/rpc"
	sm "github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func newAuth(t *testing.T, fc *fakeClient) (*authService, session.Repository) {
	t.Helper()
	db := setupDB(t)
	a := NewAuthService(fc, db).(*authService)
	a.now = func() time.Time { return fixedNow }
	return a, session.NewSQLiteRepository(db)
}

func authResp(token, username string) *rpc.AuthResponse {
	return &rpc.AuthResponse{
		AccessToken:   token,
		NeedsUsername: username == "",
		User:          sm.UserProfile{ID: "u1", Email: "a@x.com", Username: username},
	}
}

func TestRegister_SavesSession(t *testing.T) {
	fc := &fakeClient{authResp: authResp("tok", "")}
	a, repo := newAuth(t, fc)
	ctx := context.Background()

	s, err := a.Register(ctx, "a@x.com", []byte("secret"), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "secret", fc.lastPass)
	assert.True(t, s.NeedsUsername())

	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.Session{AccessToken: "tok", UserID: "u1", Email: "a@x.com", SavedAt: fixedNow}, saved)
}

func TestLogin_ErrorKeepsNoSession(t *testing.T) {
	fc := &fakeClient{authErr: client.ErrUnauthorized}
	a, repo := newAuth(t, fc)
	ctx := context.Background()

	_, err := a.Login(ctx, "a@x.com", []byte("bad"))
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestLogin_Success(t *testing.T) {
	fc := &fakeClient{authResp: authResp("tok", "alice")}
	a, _ := newAuth(t, fc)

	s, err := a.Login(context.Background(), "a@x.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, "tok", fc.token)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		a, _ := newAuth(t, &fakeClient{})
		_, err := a.Restore(ctx)
		require.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("valid token refreshes username", func(t *testing.T) {
		fc := &fakeClient{profile: sm.UserProfile{Username: "renamed"}}
		a, repo := newAuth(t, fc)
		require.NoError(t, repo.Save(ctx, &models.Session{AccessToken: "tok", Username: "old", SavedAt: fixedNow}))

		s, err := a.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok", fc.meCallToken)
		assert.Equal(t, "renamed", s.Username)

		saved, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "renamed", saved.Username)
	})

	t.Run("server down keeps session", func(t *testing.T) {
		fc := &fakeClient{meErr: client.ErrUnavailable}
		a, repo := newAuth(t, fc)
		require.NoError(t, repo.Save(ctx, &models.Session{AccessToken: "tok", Username: "bob", SavedAt: fixedNow}))

		s, err := a.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "bob", s.Username)
	})

	t.Run("rejected token clears session", func(t *testing.T) {
		fc := &fakeClient{meErr: client.ErrUnauthorized}
		a, repo := newAuth(t, fc)
		require.NoError(t, repo.Save(ctx, &models.Session{AccessToken: "tok", SavedAt: fixedNow}))

		_, err := a.Restore(ctx)
		require.ErrorIs(t, err, ErrSessionExpired)
		assert.Empty(t, fc.token)

		_, err = repo.Load(ctx)
		require.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("other error passes through", func(t *testing.T) {
		boom := errors.New("boom")
		fc := &fakeClient{meErr: boom}
		a, repo := newAuth(t, fc)
		require.NoError(t, repo.Save(ctx, &models.Session{AccessToken: "tok", SavedAt: fixedNow}))

		_, err := a.Restore(ctx)
		require.ErrorIs(t, err, boom)
	})
}

func TestClaimUsername(t *testing.T) {
	fc := &fakeClient{authResp: authResp("tok", "")}
	a, _ := newAuth(t, fc)
	ctx := context.Background()

	_, err := a.Register(ctx, "a@x.com", []byte("pw"), "")
	require.NoError(t, err)

	s, err := a.ClaimUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, "tok", s.AccessToken)

	fc.selectErr = client.ErrRejected
	_, err = a.ClaimUsername(ctx, "taken")
	require.ErrorIs(t, err, client.ErrRejected)
}

func TestLogout(t *testing.T) {
	fc := &fakeClient{authResp: authResp("tok", "alice")}
	a, repo := newAuth(t, fc)
	ctx := context.Background()

	_, err := a.Login(ctx, "a@x.com", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))
	assert.Empty(t, fc.token)

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestPingAndClose(t *testing.T) {
	fc := &fakeClient{pingErr: client.ErrUnavailable}
	a, _ := newAuth(t, fc)

	require.ErrorIs(t, a.Ping(context.Background()), client.ErrUnavailable)
	require.NoError(t, a.Close(context.Background()))
	assert.True(t, fc.closed)
}
