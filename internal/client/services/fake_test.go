package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/hoverboard/internal/client/client"
	"github.com/dmitrijs2005/hoverboard/internal/rpc"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	token string

	authResp    *rpc.AuthResponse
	authErr     error
	profile     models.UserProfile
	meErr       error
	selectErr   error
	updateErr   error
	ticket      *rpc.UploadAvatarResponse
	ticketErr   error
	pingErr     error
	closed      bool
	lastUpdate  models.UserUpdate
	lastEmail   string
	lastPass    string
	meCallToken string
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) Register(_ context.Context, email, password, _ string) (*rpc.AuthResponse, error) {
	f.lastEmail, f.lastPass = email, password
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.token = f.authResp.AccessToken
	return f.authResp, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*rpc.AuthResponse, error) {
	f.lastEmail, f.lastPass = email, password
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.token = f.authResp.AccessToken
	return f.authResp, nil
}

func (f *fakeClient) SelectUsername(_ context.Context, username string) (*models.UserProfile, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	f.profile.Username = username
	p := f.profile
	return &p, nil
}

func (f *fakeClient) Me(context.Context) (*models.UserProfile, error) {
	f.meCallToken = f.token
	if f.meErr != nil {
		return nil, f.meErr
	}
	p := f.profile
	return &p, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, upd models.UserUpdate) (*models.UserProfile, error) {
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p := f.profile
	if upd.AvatarURL != nil {
		p.AvatarURL = *upd.AvatarURL
	}
	if upd.Bio != nil {
		p.Bio = *upd.Bio
	}
	return &p, nil
}

func (f *fakeClient) UploadAvatar(context.Context) (*rpc.UploadAvatarResponse, error) {
	return f.ticket, f.ticketErr
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
