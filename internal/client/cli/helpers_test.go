package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hoverboard/internal/client/config"
	"github.com/dmitrijs2005/hoverboard/internal/client/models"
	"github.com/dmitrijs2005/hoverboard/internal/client/repositories/session"
	sm "github.com/dmitrijs2005/hoverboard/internal/server/models"
)

type fakeAuth struct {
	regEmail string
	regPass  []byte
	regName  string
	regErr   error

	loginEmail string
	loginPass  []byte
	loginErr   error

	session    *models.Session
	restoreErr error

	claimed  string
	claimErr error

	logoutCalled bool
	logoutErr    error

	pingErr error
	closed  bool
}

func (f *fakeAuth) Register(_ context.Context, email string, password []byte, fullName string) (*models.Session, error) {
	f.regEmail, f.regPass, f.regName = email, append([]byte(nil), password...), fullName
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.Session{AccessToken: "t", Email: email}, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.Session, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Session{AccessToken: "t", Email: email, Username: "alice"}, nil
}

func (f *fakeAuth) Restore(context.Context) (*models.Session, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	if f.session == nil {
		return nil, session.ErrNoSession
	}
	return f.session, nil
}

func (f *fakeAuth) ClaimUsername(_ context.Context, username string) (*models.Session, error) {
	f.claimed = username
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return &models.Session{AccessToken: "t", Username: username}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

func (f *fakeAuth) Close(context.Context) error { f.closed = true; return nil }

type fakeProfile struct {
	profile   sm.UserProfile
	err       error
	lastUpd   sm.UserUpdate
	lastPath  string
	updCalled bool
}

func (f *fakeProfile) Me(context.Context) (*sm.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.profile
	return &p, nil
}

func (f *fakeProfile) Update(_ context.Context, upd sm.UserUpdate) (*sm.UserProfile, error) {
	f.updCalled, f.lastUpd = true, upd
	if f.err != nil {
		return nil, f.err
	}
	p := f.profile
	if upd.Bio != nil {
		p.Bio = *upd.Bio
	}
	return &p, nil
}

func (f *fakeProfile) UploadAvatar(_ context.Context, path string) (*sm.UserProfile, error) {
	f.lastPath = path
	if f.err != nil {
		return nil, f.err
	}
	p := f.profile
	p.AvatarURL = "http://cdn/" + path
	return &p, nil
}

func newTestApp(input string, fa *fakeAuth, fp *fakeProfile) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	c := &config.Config{}
	return &App{
		config:         c,
		authService:    fa,
		profileService: fp,
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            &out,
	}, &out
}

func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(old) })
	return &buf
}
