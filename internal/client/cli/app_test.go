package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/client/client"
	"github.com/dmitrijs2005/hoverboard/internal/client/config"
	"github.com/dmitrijs2005/hoverboard/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMode_LogsOnlyOnChange(t *testing.T) {
	logs := captureLog(t)
	app := &App{}

	app.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, app.mode())
	assert.NotEmpty(t, logs.String())

	logs.Reset()
	app.setMode(ModeOnline)
	assert.Empty(t, logs.String())

	app.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, app.mode())
	assert.Contains(t, logs.String(), "offline")
}

func TestGetStatus(t *testing.T) {
	a := &App{}
	assert.Equal(t, "", a.getStatus())

	a.setSession(&models.Session{Email: "a@x.com"})
	assert.Equal(t, "(a@x.com )", a.getStatus())

	a.setSession(&models.Session{Email: "a@x.com", Username: "alice"})
	a.Mode = ModeOnline
	assert.Equal(t, "(alice online)", a.getStatus())
}

func TestCheckOnline(t *testing.T) {
	captureLog(t)
	fa := &fakeAuth{}
	a, _ := newTestApp("", fa, &fakeProfile{})

	a.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, a.mode())

	fa.pingErr = client.ErrUnavailable
	a.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, a.mode())
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	captureLog(t)
	a, _ := newTestApp("", &fakeAuth{}, &fakeProfile{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("saved session", func(t *testing.T) {
		fa := &fakeAuth{session: &models.Session{AccessToken: "t", Email: "a@x.com"}}
		a, out := newTestApp("", fa, &fakeProfile{})

		a.restore(ctx)
		assert.True(t, a.isLoggedIn())
		assert.Contains(t, out.String(), "Welcome back, a@x.com")
		assert.Contains(t, out.String(), "Pick a username")
	})

	t.Run("nothing saved is silent", func(t *testing.T) {
		logs := captureLog(t)
		a, out := newTestApp("", &fakeAuth{}, &fakeProfile{})

		a.restore(ctx)
		assert.False(t, a.isLoggedIn())
		assert.Empty(t, out.String())
		assert.Empty(t, logs.String())
	})

	t.Run("failure is logged", func(t *testing.T) {
		logs := captureLog(t)
		a, _ := newTestApp("", &fakeAuth{restoreErr: errors.New("session expired")}, &fakeProfile{})

		a.restore(ctx)
		assert.False(t, a.isLoggedIn())
		assert.Contains(t, logs.String(), "session expired")
	})
}

func TestRoot_ExitsOnCommand(t *testing.T) {
	captureLog(t)
	capturePrintln(t)
	fa := &fakeAuth{session: &models.Session{AccessToken: "t", Username: "alice"}}
	a, out := newTestApp("exit\n", fa, &fakeProfile{})

	a.Run(context.Background())

	assert.Contains(t, out.String(), "Welcome to HoverBoard CLI")
	assert.Contains(t, out.String(), "Welcome back, alice")
	assert.True(t, fa.closed)
}

func TestNewApp_CreatesSessionDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	cfg := &config.Config{ServerEndpointAddr: "127.0.0.1:1", SessionDir: dir, MaxAvatarBytes: 1024}

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.db.Close() })

	_, err = os.Stat(filepath.Join(dir, sessionDBName))
	require.NoError(t, err)
	assert.False(t, a.isLoggedIn())
}

func TestNewApp_BadSessionDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewApp(context.Background(), &config.Config{SessionDir: file})
	require.Error(t, err)
}
