// Package sentence implements repository.SentenceRepository against
// PostgreSQL.
package sentence

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
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

type sentenceRepository struct {
	pool Pool
}

// NewRepository returns a PostgreSQL-backed SentenceRepository.
func NewRepository(pool Pool) repository.SentenceRepository {
	return &sentenceRepository{pool: pool}
}

// BulkInsert loads a batch of fresh sentences via COPY, the bulk-ingest path
// spec.md §1's source-upload flow needs for whole-book imports. Every row
// starts at Version 0; a row without DraftMeta gets a single untranslated
// segment, and a row without Draft gets the sentence text as its draft.
func (r *sentenceRepository) BulkInsert(ctx context.Context, projectID int, sentences []*model.Sentence) (int64, error) {
	if len(sentences) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(sentences))
	for i, s := range sentences {
		meta := s.DraftMeta
		if len(meta) == 0 {
			meta = model.FreshMeta(len(s.Sentence))
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.CodeMalformed, "encoding draft meta")
		}
		draft := s.Draft
		if draft == "" {
			draft = s.Sentence
		}
		rows[i] = []any{
			projectID,
			s.SentenceID,
			s.SurrogateID,
			s.Sentence,
			draft,
			metaJSON,
			0,
		}
	}

	columns := []string{"project_id", "sentence_id", "surrogate_id", "sentence", "draft", "draft_meta", "version"}
	count, err := r.pool.CopyFrom(ctx, pgx.Identifier{"sentences"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, repository.HandlePostgreSQLError(err, "bulk insert sentences")
	}
	return count, nil
}

func (r *sentenceRepository) GetByID(ctx context.Context, projectID int, sentenceID int64) (*model.Sentence, error) {
	query := `
		SELECT project_id, sentence_id, surrogate_id, sentence, draft, draft_meta, version
		FROM sentences
		WHERE project_id = $1 AND sentence_id = $2`

	row := r.pool.QueryRow(ctx, query, projectID, sentenceID)
	s, err := scanSentence(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError("sentence not found")
		}
		return nil, repository.HandlePostgreSQLError(err, "get sentence")
	}
	return s, nil
}

func (r *sentenceRepository) ListByProject(ctx context.Context, projectID int) ([]*model.Sentence, error) {
	query := `
		SELECT project_id, sentence_id, surrogate_id, sentence, draft, draft_meta, version
		FROM sentences
		WHERE project_id = $1
		ORDER BY sentence_id`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "list sentences by project")
	}
	defer rows.Close()
	return scanSentences(rows)
}

func (r *sentenceRepository) ListByIDRange(ctx context.Context, projectID int, minID, maxID int64) ([]*model.Sentence, error) {
	query := `
		SELECT project_id, sentence_id, surrogate_id, sentence, draft, draft_meta, version
		FROM sentences
		WHERE project_id = $1 AND sentence_id BETWEEN $2 AND $3
		ORDER BY sentence_id`

	rows, err := r.pool.Query(ctx, query, projectID, minID, maxID)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "list sentences by id range")
	}
	defer rows.Close()
	return scanSentences(rows)
}

// UpdateDraft writes a new (draft, meta) only if the row is still at
// expectedVersion, the select-for-update alternative spec.md §5 allows:
// optimistic concurrency with a version column and retry-on-conflict.
func (r *sentenceRepository) UpdateDraft(ctx context.Context, projectID int, sentenceID int64, draft string, meta model.Meta, expectedVersion int) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeMalformed, "encoding draft meta")
	}

	query := `
		UPDATE sentences
		SET draft = $1, draft_meta = $2, version = version + 1
		WHERE project_id = $3 AND sentence_id = $4 AND version = $5`

	tag, err := r.pool.Exec(ctx, query, draft, metaJSON, projectID, sentenceID, expectedVersion)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "update sentence draft")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeConflict, "sentence draft changed concurrently, retry")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSentence(row rowScanner) (*model.Sentence, error) {
	var s model.Sentence
	var metaJSON []byte
	if err := row.Scan(&s.ProjectID, &s.SentenceID, &s.SurrogateID, &s.Sentence, &s.Draft, &metaJSON, &s.Version); err != nil {
		return nil, err
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &s.DraftMeta); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeMalformed, "decoding draft meta")
		}
	}
	return &s, nil
}

func scanSentences(rows pgx.Rows) ([]*model.Sentence, error) {
	var out []*model.Sentence
	for rows.Next() {
		s, err := scanSentence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
