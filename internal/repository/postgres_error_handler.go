package repository

import (
	"errors"
	"strings"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// HandlePostgreSQLError converts PostgreSQL-specific errors to the AppError
// codes named in spec.md §7. Subpackage repositories (language, sentence,
// project, trmemory) call this at every pool boundary instead of returning
// raw pgx/pgconn errors to callers.
func HandlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		return handleUniqueViolation(pgErr)

	case "23503": // foreign_key_violation
		return handleForeignKeyViolation(pgErr)

	case "23502": // not_null_violation
		return apperrors.Wrap(err, apperrors.CodeMalformed, "required field is missing")

	case "23514": // check_violation
		return apperrors.Wrap(err, apperrors.CodeMalformed, "data violates check constraint")

	case "42P01": // undefined_table
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: table not found")

	case "42703": // undefined_column
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: column not found")

	case "08000", "08003", "08006": // connection_exception variants
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection error")

	case "53300": // too_many_connections
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection limit reached")

	case "40001": // serialization_failure
		return apperrors.Wrap(err, apperrors.CodeConflict, "concurrent write lost the race, retry")

	default:
		message := "database error (PostgreSQL code: " + pgErr.Code + ")"
		return apperrors.Wrap(err, apperrors.CodeInternal, message)
	}
}

func handleUniqueViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	constraintName := pgErr.ConstraintName

	switch {
	case strings.Contains(constraintName, "languages"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "language with this code already exists")
	case strings.Contains(constraintName, "sentences"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "sentence with this id already exists in the project")
	case strings.Contains(constraintName, "projects"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "project with this name already exists")
	case strings.Contains(constraintName, "project_users"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "user is already a member of this project")
	case strings.Contains(constraintName, "translation_memory"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "translation memory row for this token already exists")
	default:
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "resource already exists")
	}
}

func handleForeignKeyViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	constraintName := pgErr.ConstraintName

	switch {
	case strings.Contains(constraintName, "src_lang"), strings.Contains(constraintName, "trg_lang"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced language does not exist")
	case strings.Contains(constraintName, "project_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced project does not exist")
	case strings.Contains(constraintName, "sentence_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced sentence does not exist")
	default:
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced resource does not exist")
	}
}
