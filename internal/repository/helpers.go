package repository

import apperrors "github.com/vachan-cat/cattrans/internal/errors"

// NewNotFoundError is the NotAvailable-class error repositories return when
// a lookup by id/code finds no row (spec.md §7).
func NewNotFoundError(message string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeNotFound, message)
}
