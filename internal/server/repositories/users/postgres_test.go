package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

var columns = []string{"id", "email", "username", "password_hash", "full_name", "bio", "avatar_url",
	"saldo", "level", "created_at", "updated_at", "is_active"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRow(u *models.User) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(u.ID, u.Email, u.Username, u.PasswordHash, u.FullName, u.Bio,
		u.AvatarURL, u.Saldo, u.Level, u.CreatedAt, u.UpdatedAt, u.IsActive)
}

func sampleUser() *models.User {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.User{
		ID: "u-1", Email: "a@x.com", PasswordHash: "hash", AvatarURL: models.DefaultAvatarURL,
		Level: models.LevelBasic, CreatedAt: ts, UpdatedAt: ts, IsActive: true,
	}
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*username,.*is_active\)\s*VALUES\s*\(\$1,.*\$12\)\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUser()
	mock.ExpectExec(insertQ).
		WithArgs(u.ID, u.Email, "", u.PasswordHash, "", "", u.AvatarURL, int64(0), u.Level, u.CreatedAt, u.UpdatedAt, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{constraint: "users_email_key", want: common.ErrEmailTaken},
		{constraint: "users_username_key", want: common.ErrUsernameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(insertQ).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			_, err := repo.Create(context.Background(), sampleUser())
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*email,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("a@x.com").WillReturnRows(userRow(sampleUser()))

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || !got.IsActive || got.Level != models.LevelBasic {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*email,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByUsername_EmptyNeverMatches(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.GetByUsername(context.Background(), "")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestSetUsername_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	u := sampleUser()
	u.Username = "alice"
	u.UpdatedAt = at

	q := `(?s)^UPDATE\s+users\s+SET\s+username\s*=\s*\$2,\s*updated_at\s*=\s*GREATEST\(updated_at,\s*\$3\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,.*is_active$`
	mock.ExpectQuery(q).WithArgs("u-1", "alice", at).WillReturnRows(userRow(u))

	got, err := repo.SetUsername(context.Background(), "u-1", "alice", at)
	if err != nil {
		t.Fatalf("SetUsername error: %v", err)
	}
	if got.Username != "alice" || !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestSetUsername_UniqueViolationIsUsernameTaken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+users\s+SET\s+username`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.SetUsername(context.Background(), "u-1", "alice", time.Now())
	if !errors.Is(err, common.ErrUsernameTaken) {
		t.Fatalf("want common.ErrUsernameTaken, got %v", err)
	}
}

func TestUpdate_PassesOnlySetFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	bio := "hello"
	u := sampleUser()
	u.Bio = bio

	q := `(?s)^UPDATE\s+users\s+SET\s+full_name\s*=\s*COALESCE\(\$2,\s*full_name\),\s*bio\s*=\s*COALESCE\(\$3,\s*bio\),.*WHERE\s+id\s*=\s*\$1`
	mock.ExpectQuery(q).WithArgs("u-1", nil, bio, nil, at).WillReturnRows(userRow(u))

	got, err := repo.Update(context.Background(), "u-1", models.UserUpdate{Bio: &bio}, at)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Bio != "hello" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
