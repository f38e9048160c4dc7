// Package language implements the Language service: a thin validating
// wrapper over the language repository (spec.md §3 "Language").
package language

import (
	"context"
	"strings"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
)

// Service is the Language use-case surface the CLI/API layer drives.
type Service interface {
	Create(ctx context.Context, code, name string) (*model.Language, error)
	GetByCode(ctx context.Context, code string) (*model.Language, error)
	List(ctx context.Context) ([]*model.Language, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo repository.LanguageRepository
}

// New builds a Service over the given repository.
func New(repo repository.LanguageRepository) Service {
	return &service{repo: repo}
}

// Create registers a new language. code is normalized to lowercase since
// every lookup elsewhere in the engine treats language codes as
// case-insensitive keys.
func (s *service) Create(ctx context.Context, code, name string) (*model.Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "language code must not be empty")
	}
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "language name must not be empty")
	}

	lang := &model.Language{Code: code, Name: name}
	if err := s.repo.Create(ctx, lang); err != nil {
		return nil, err
	}
	return lang, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*model.Language, error) {
	return s.repo.GetByCode(ctx, strings.ToLower(strings.TrimSpace(code)))
}

func (s *service) List(ctx context.Context) ([]*model.Language, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
