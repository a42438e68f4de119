package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/dbx"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

const projectColumns = `id, user_id, title, subtitle, description, detailed_description, category,
		 image_url, gallery_images, hover_content, fun_fact, tech_stack, features, challenges, solutions,
		 link_url, github_url, demo_url, created_at, duration, team_size, status, views`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// jsonList adapts a string slice to a jsonb column.
type jsonList struct {
	dst *[]string
}

func (l jsonList) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*l.dst = []string{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
	out := []string{}
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*l.dst = out
	return nil
}

func encodeList(s []string) ([]byte, error) {
	if s == nil {
		s = []string{}
	}
	return json.Marshal(s)
}

func scanProject(row rowScanner) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Subtitle, &p.Description, &p.DetailedDescription, &p.Category,
		&p.ImageURL, jsonList{&p.GalleryImages}, &p.HoverContent, &p.FunFact, jsonList{&p.TechStack},
		jsonList{&p.Features}, jsonList{&p.Challenges}, jsonList{&p.Solutions},
		&p.LinkURL, &p.GithubURL, &p.DemoURL, &p.CreatedAt, &p.Duration, &p.TeamSize, &p.Status, &p.Views)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

// listArgs encodes the five jsonb columns in column order.
func listArgs(p *models.Project) ([]any, error) {
	out := make([]any, 0, 5)
	for _, l := range [][]string{p.GalleryImages, p.TechStack, p.Features, p.Challenges, p.Solutions} {
		b, err := encodeList(l)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	lists, err := listArgs(p)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO projects (` + projectColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		 `

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Title, p.Subtitle, p.Description, p.DetailedDescription, p.Category,
		p.ImageURL, lists[0], p.HoverContent, p.FunFact, lists[1], lists[2], lists[3], lists[4],
		p.LinkURL, p.GithubURL, p.DemoURL, p.CreatedAt, p.Duration, p.TeamSize, p.Status, p.Views)
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		 WHERE id = $1
		 `

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, mapError(err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return result, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Project, error) {
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects
		 ORDER BY created_at DESC
		 `)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `, userID)
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	lists, err := listArgs(p)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE projects SET
		 title = $2, subtitle = $3, description = $4, detailed_description = $5, category = $6,
		 image_url = $7, gallery_images = $8, hover_content = $9, fun_fact = $10, tech_stack = $11,
		 features = $12, challenges = $13, solutions = $14, link_url = $15, github_url = $16,
		 demo_url = $17, duration = $18, team_size = $19, status = $20
		 WHERE id = $1
		 RETURNING ` + projectColumns

	updated, err := scanProject(r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Subtitle, p.Description, p.DetailedDescription, p.Category,
		p.ImageURL, lists[0], p.HoverContent, p.FunFact, lists[1],
		lists[2], lists[3], lists[4], p.LinkURL, p.GithubURL,
		p.DemoURL, p.Duration, p.TeamSize, p.Status))
	if err != nil {
		return nil, mapError(err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapError(err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id string) (*models.Project, error) {
	query :=
		`UPDATE projects SET views = views + 1
		 WHERE id = $1
		 RETURNING ` + projectColumns

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}
