// Package trmemory implements repository.TranslationMemoryRepository
// against PostgreSQL.
package trmemory

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
	Begin(ctx context.Context) (pgx.Tx, error)
}

type trMemoryRepository struct {
	pool Pool
}

// NewRepository returns a PostgreSQL-backed TranslationMemoryRepository.
func NewRepository(pool Pool) repository.TranslationMemoryRepository {
	return &trMemoryRepository{pool: pool}
}

// Upsert implements the aggregator's translation-memory write (spec.md
// §4.8): on insert, seed translations with the one observed translation
// and copy over metaData from any other row sharing (srcLang, token); on
// update, add occurrenceCount to that translation's running frequency.
// The row is locked for the duration of the transaction so concurrent
// occurrences of the same token serialize instead of losing increments.
func (r *trMemoryRepository) Upsert(ctx context.Context, srcLang, trgLang, token, translation string, occurrenceCount int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "begin translation memory upsert")
	}
	defer tx.Rollback(ctx)

	var id int
	var translationsJSON []byte
	err = tx.QueryRow(ctx, `
		SELECT id, translations FROM translation_memory
		WHERE src_lang = $1 AND trg_lang = $2 AND token = $3
		FOR UPDATE`, srcLang, trgLang, token).Scan(&id, &translationsJSON)

	switch {
	case err == nil:
		translations := make(map[string]model.TranslationWeight)
		if len(translationsJSON) > 0 {
			if uerr := json.Unmarshal(translationsJSON, &translations); uerr != nil {
				return apperrors.Wrap(uerr, apperrors.CodeMalformed, "decoding translation memory row")
			}
		}
		w := translations[translation]
		w.Frequency += uint64(occurrenceCount)
		translations[translation] = w

		newJSON, merr := json.Marshal(translations)
		if merr != nil {
			return apperrors.Wrap(merr, apperrors.CodeMalformed, "encoding translation memory row")
		}
		if _, err := tx.Exec(ctx, `UPDATE translation_memory SET translations = $1 WHERE id = $2`, newJSON, id); err != nil {
			return repository.HandlePostgreSQLError(err, "update translation memory")
		}

	case errors.Is(err, pgx.ErrNoRows):
		var metaJSON []byte
		merr := tx.QueryRow(ctx, `
			SELECT meta_data FROM translation_memory
			WHERE src_lang = $1 AND token = $2 AND meta_data IS NOT NULL
			LIMIT 1`, srcLang, token).Scan(&metaJSON)
		if merr != nil && !errors.Is(merr, pgx.ErrNoRows) {
			return repository.HandlePostgreSQLError(merr, "lookup translation memory metadata")
		}

		translations := map[string]model.TranslationWeight{
			translation: {Frequency: uint64(occurrenceCount)},
		}
		transJSON, jerr := json.Marshal(translations)
		if jerr != nil {
			return apperrors.Wrap(jerr, apperrors.CodeMalformed, "encoding translation memory row")
		}
		if len(metaJSON) == 0 {
			metaJSON = []byte("null")
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO translation_memory (src_lang, trg_lang, token, translations, meta_data)
			VALUES ($1, $2, $3, $4, $5)`, srcLang, trgLang, token, transJSON, metaJSON); err != nil {
			return repository.HandlePostgreSQLError(err, "insert translation memory")
		}

	default:
		return repository.HandlePostgreSQLError(err, "lock translation memory row")
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.HandlePostgreSQLError(err, "commit translation memory upsert")
	}
	return nil
}

func (r *trMemoryRepository) GetByKey(ctx context.Context, srcLang, trgLang, token string) (*model.TranslationMemoryRow, error) {
	query := `
		SELECT id, src_lang, trg_lang, token, translations, meta_data
		FROM translation_memory
		WHERE src_lang = $1 AND trg_lang = $2 AND token = $3`

	row, err := scanRow(r.pool.QueryRow(ctx, query, srcLang, trgLang, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError("translation memory row not found")
		}
		return nil, repository.HandlePostgreSQLError(err, "get translation memory row")
	}
	return row, nil
}

func (r *trMemoryRepository) ListBySrcLang(ctx context.Context, srcLang string) ([]*model.TranslationMemoryRow, error) {
	query := `
		SELECT id, src_lang, trg_lang, token, translations, meta_data
		FROM translation_memory
		WHERE src_lang = $1`

	rows, err := r.pool.Query(ctx, query, srcLang)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "list translation memory by src lang")
	}
	defer rows.Close()

	var out []*model.TranslationMemoryRow
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*model.TranslationMemoryRow, error) {
	var r model.TranslationMemoryRow
	var translationsJSON, metaJSON []byte
	if err := row.Scan(&r.ID, &r.SrcLang, &r.TrgLang, &r.Token, &translationsJSON, &metaJSON); err != nil {
		return nil, err
	}
	if len(translationsJSON) > 0 {
		if err := json.Unmarshal(translationsJSON, &r.Translations); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeMalformed, "decoding translation memory translations")
		}
	}
	if len(metaJSON) > 0 && string(metaJSON) != "null" {
		if err := json.Unmarshal(metaJSON, &r.MetaData); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeMalformed, "decoding translation memory metadata")
		}
	}
	return &r, nil
}
