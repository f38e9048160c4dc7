package repository

import (
	"context"

	"github.com/vachan-cat/cattrans/internal/model"
)

// LanguageRepository persists the Language aggregate.
type LanguageRepository interface {
	Create(ctx context.Context, lang *model.Language) error
	GetByCode(ctx context.Context, code string) (*model.Language, error)
	GetByID(ctx context.Context, id int) (*model.Language, error)
	List(ctx context.Context) ([]*model.Language, error)
	Delete(ctx context.Context, id int) error
}
