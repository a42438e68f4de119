package projects

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
)

var columns = []string{"id", "user_id", "title", "subtitle", "description", "detailed_description", "category",
	"image_url", "gallery_images", "hover_content", "fun_fact", "tech_stack", "features", "challenges", "solutions",
	"link_url", "github_url", "demo_url", "created_at", "duration", "team_size", "status", "views"}

var created = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func addRow(rows *sqlmock.Rows, id, userID string, views int64) *sqlmock.Rows {
	return rows.AddRow(id, userID, "Title", "Sub", "Desc", "Detailed", "web",
		"img.png", []byte(`["a.png","b.png"]`), "hover", "fun", []byte(`["Go"]`), []byte(`[]`), nil, []byte(`["x"]`),
		nil, "https://github.com/x", nil, created, "3 days", int64(2), "completed", views)
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,.*FROM\s+projects\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("p-1").WillReturnRows(addRow(sqlmock.NewRows(columns), "p-1", "u-1", 7))

	p, err := repo.GetByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if p.ID != "p-1" || p.Views != 7 || p.TeamSize != 2 {
		t.Fatalf("unexpected project: %+v", p)
	}
	if len(p.GalleryImages) != 2 || p.TechStack[0] != "Go" {
		t.Fatalf("lists not decoded: %+v", p)
	}
	if p.Challenges == nil || len(p.Challenges) != 0 {
		t.Fatalf("NULL list must decode to empty slice, got %#v", p.Challenges)
	}
	if p.LinkURL != nil || p.GithubURL == nil || *p.GithubURL != "https://github.com/x" {
		t.Fatalf("nullable urls not scanned: %+v", p)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+projects`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_EncodesLists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	p := models.NewProject("p-1", "u-1", models.ProjectCreate{Title: "T", Category: "web", TechStack: []string{"Go"}}, created)

	q := `(?s)^INSERT\s+INTO\s+projects\s*\(id,\s*user_id,.*views\)\s*VALUES\s*\(\$1,.*\$23\)\s*$`
	mock.ExpectExec(q).
		WithArgs("p-1", "u-1", "T", "", "", "", "web", "", []byte(`[]`), "", "", []byte(`["Go"]`), []byte(`[]`), []byte(`[]`), []byte(`[]`),
			nil, nil, nil, created, "", int64(1), models.DefaultProjectStatus, int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList_Rows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(columns)
	addRow(rows, "p-1", "u-1", 0)
	addRow(rows, "p-2", "u-2", 3)
	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+projects\s+ORDER\s+BY\s+created_at\s+DESC`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].ID != "p-2" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*WHERE\s+user_id\s*=\s*\$1`).WithArgs("u-1").WillReturnError(errors.New("db err"))

	_, err := repo.ListByUser(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCountByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM projects WHERE user_id = \$1$`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByUser(context.Background(), "u-1")
	if err != nil || n != 2 {
		t.Fatalf("CountByUser = %d, %v", n, err)
	}
}

func TestIncrementViews(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+projects\s+SET\s+views\s*=\s*views\s*\+\s*1\s+WHERE\s+id\s*=\s*\$1\s+RETURNING`
	mock.ExpectQuery(q).WithArgs("p-1").WillReturnRows(addRow(sqlmock.NewRows(columns), "p-1", "u-1", 8))

	p, err := repo.IncrementViews(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("IncrementViews error: %v", err)
	}
	if p.Views != 8 {
		t.Fatalf("views = %d, want 8", p.Views)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+projects\s+SET\s+title\s*=\s*\$2`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Project{ID: "ghost"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM projects WHERE id = \$1$`).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE FROM projects WHERE id = \$1$`).WithArgs("p-2").WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), "p-1")
	if err != nil || !ok {
		t.Fatalf("Delete(p-1) = %v, %v", ok, err)
	}
	ok, err = repo.Delete(context.Background(), "p-2")
	if err != nil || ok {
		t.Fatalf("Delete(p-2) = %v, %v", ok, err)
	}
}
