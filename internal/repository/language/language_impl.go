// Package language implements repository.LanguageRepository against
// PostgreSQL, following the teacher's pool-interface-over-pgx pattern.
package language

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
)

// Pool is the subset of pgxpool.Pool this repository needs, narrowed so
// tests can substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type languageRepository struct {
	pool Pool
}

// NewRepository returns a PostgreSQL-backed LanguageRepository.
func NewRepository(pool Pool) repository.LanguageRepository {
	return &languageRepository{pool: pool}
}

func (r *languageRepository) Create(ctx context.Context, lang *model.Language) error {
	query := `
		INSERT INTO languages (code, name)
		VALUES ($1, $2)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, lang.Code, lang.Name).Scan(&lang.ID)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "create language")
	}
	return nil
}

func (r *languageRepository) GetByCode(ctx context.Context, code string) (*model.Language, error) {
	query := `SELECT id, code, name FROM languages WHERE code = $1`

	var lang model.Language
	err := r.pool.QueryRow(ctx, query, code).Scan(&lang.ID, &lang.Code, &lang.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError("language code " + code + " not found")
		}
		return nil, repository.HandlePostgreSQLError(err, "get language by code")
	}
	return &lang, nil
}

func (r *languageRepository) GetByID(ctx context.Context, id int) (*model.Language, error) {
	query := `SELECT id, code, name FROM languages WHERE id = $1`

	var lang model.Language
	err := r.pool.QueryRow(ctx, query, id).Scan(&lang.ID, &lang.Code, &lang.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError("language not found")
		}
		return nil, repository.HandlePostgreSQLError(err, "get language by id")
	}
	return &lang, nil
}

func (r *languageRepository) List(ctx context.Context) ([]*model.Language, error) {
	query := `SELECT id, code, name FROM languages ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "list languages")
	}
	defer rows.Close()

	var out []*model.Language
	for rows.Next() {
		var lang model.Language
		if err := rows.Scan(&lang.ID, &lang.Code, &lang.Name); err != nil {
			return nil, err
		}
		out = append(out, &lang)
	}
	return out, rows.Err()
}

func (r *languageRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "delete language")
	}
	if tag.RowsAffected() == 0 {
		return repository.NewNotFoundError("language not found")
	}
	return nil
}
