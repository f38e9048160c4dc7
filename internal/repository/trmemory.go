package repository

import (
	"context"

	"github.com/vachan-cat/cattrans/internal/model"
)

// TranslationMemoryRepository persists TranslationMemoryRow, keyed by
// (SrcLang, TrgLang, Token). Upsert must serialize concurrent writers to
// the same key (spec.md §5): a row lock (SELECT ... FOR UPDATE) or an
// atomic increment.
type TranslationMemoryRepository interface {
	Upsert(ctx context.Context, srcLang, trgLang, token, translation string, occurrenceCount int) error
	GetByKey(ctx context.Context, srcLang, trgLang, token string) (*model.TranslationMemoryRow, error)
	ListBySrcLang(ctx context.Context, srcLang string) ([]*model.TranslationMemoryRow, error)
}
