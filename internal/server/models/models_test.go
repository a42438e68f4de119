package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUser_JSONHidesPasswordHash(t *testing.T) {
	u := &User{ID: "u-1", Email: "a@x.com", PasswordHash: "$2a$secret"}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "password")
}

func TestUser_ProfileAndNeedsUsername(t *testing.T) {
	u := &User{ID: "u-1", Email: "a@x.com", FullName: "Alice", PasswordHash: "h"}
	assert.True(t, u.NeedsUsername())

	u.Username = "alice"
	assert.False(t, u.NeedsUsername())

	p := u.Profile()
	assert.Equal(t, "u-1", p.ID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "Alice", p.FullName)
}

func TestUserUpdate_Apply(t *testing.T) {
	u := &User{FullName: "Old", Bio: "old bio", AvatarURL: "old.png"}

	upd := UserUpdate{Bio: strPtr("new bio")}
	assert.False(t, upd.Empty())
	upd.Apply(u)

	assert.Equal(t, "Old", u.FullName)
	assert.Equal(t, "new bio", u.Bio)
	assert.Equal(t, "old.png", u.AvatarURL)
	assert.True(t, UserUpdate{}.Empty())
}

func TestNewProject_Defaults(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := NewProject("p-1", "u-1", ProjectCreate{Title: "T", Category: "web"}, now)

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, 1, p.TeamSize)
	assert.Equal(t, DefaultProjectStatus, p.Status)
	assert.Equal(t, now, p.CreatedAt)
	assert.NotNil(t, p.TechStack)
	assert.Zero(t, p.Views)
}

func TestProjectCreate_Validate(t *testing.T) {
	err := ProjectCreate{Category: "web"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorInvalidInput))

	assert.NoError(t, ProjectCreate{Title: "T", Category: "web"}.Validate())
}

func TestProjectUpdate_Apply(t *testing.T) {
	p := &Project{Title: "old", TeamSize: 1, TechStack: []string{"Go"}}
	size := 4
	tech := []string{"Go", "Postgres"}

	ProjectUpdate{Title: strPtr("new"), TeamSize: &size, TechStack: &tech, DemoURL: strPtr("https://demo")}.Apply(p)

	assert.Equal(t, "new", p.Title)
	assert.Equal(t, 4, p.TeamSize)
	assert.Equal(t, []string{"Go", "Postgres"}, p.TechStack)
	require.NotNil(t, p.DemoURL)
	assert.Equal(t, "https://demo", *p.DemoURL)
}
