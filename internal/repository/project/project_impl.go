// Package project implements repository.ProjectRepository against
// PostgreSQL.
package project

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
)

// Pool is the subset of pgxpool.Pool this repository needs.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type projectRepository struct {
	pool Pool
}

// NewRepository returns a PostgreSQL-backed ProjectRepository.
func NewRepository(pool Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, p *model.Project) error {
	metaJSON, err := json.Marshal(p.MetaData)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeMalformed, "encoding project metadata")
	}

	query := `
		INSERT INTO projects (name, src_lang, trg_lang, meta_data, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = r.pool.QueryRow(ctx, query, p.Name, p.SrcLang, p.TrgLang, metaJSON, p.Active).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "create project")
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int) (*model.Project, error) {
	query := `
		SELECT id, name, src_lang, trg_lang, meta_data, active, created_at
		FROM projects WHERE id = $1`

	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError("project not found")
		}
		return nil, repository.HandlePostgreSQLError(err, "get project")
	}
	return p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	query := `
		SELECT id, name, src_lang, trg_lang, meta_data, active, created_at
		FROM projects ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "list projects")
	}
	defer rows.Close()

	var out []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p *model.Project) error {
	metaJSON, err := json.Marshal(p.MetaData)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeMalformed, "encoding project metadata")
	}

	query := `
		UPDATE projects
		SET name = $1, src_lang = $2, trg_lang = $3, meta_data = $4, active = $5
		WHERE id = $6`

	tag, err := r.pool.Exec(ctx, query, p.Name, p.SrcLang, p.TrgLang, metaJSON, p.Active, p.ID)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "update project")
	}
	if tag.RowsAffected() == 0 {
		return repository.NewNotFoundError("project not found")
	}
	return nil
}

func (r *projectRepository) AddUser(ctx context.Context, pu *model.ProjectUser) error {
	query := `
		INSERT INTO project_users (project_id, user_id, role, active)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, pu.ProjectID, pu.UserID, pu.Role, pu.Active)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "add project user")
	}
	return nil
}

func (r *projectRepository) ListUsers(ctx context.Context, projectID int) ([]*model.ProjectUser, error) {
	query := `
		SELECT project_id, user_id, role, active
		FROM project_users WHERE project_id = $1`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "list project users")
	}
	defer rows.Close()

	var out []*model.ProjectUser
	for rows.Next() {
		var pu model.ProjectUser
		if err := rows.Scan(&pu.ProjectID, &pu.UserID, &pu.Role, &pu.Active); err != nil {
			return nil, err
		}
		out = append(out, &pu)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var p model.Project
	var metaJSON []byte
	if err := row.Scan(&p.ID, &p.Name, &p.SrcLang, &p.TrgLang, &metaJSON, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &p.MetaData); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeMalformed, "decoding project metadata")
		}
	}
	return &p, nil
}
