package repository

import (
	"context"

	"github.com/vachan-cat/cattrans/internal/model"
)

// SentenceRepository persists the Sentence (a.k.a. TranslationDraft)
// aggregate. Writes to an existing Sentence's draft/draftMeta must be
// optimistic-concurrency guarded by Version (spec.md §5): UpdateDraft
// fails with a Conflict-class error if expectedVersion is stale, and the
// caller is expected to retry.
type SentenceRepository interface {
	BulkInsert(ctx context.Context, projectID int, sentences []*model.Sentence) (int64, error)
	GetByID(ctx context.Context, projectID int, sentenceID int64) (*model.Sentence, error)
	ListByProject(ctx context.Context, projectID int) ([]*model.Sentence, error)
	ListByIDRange(ctx context.Context, projectID int, minID, maxID int64) ([]*model.Sentence, error)
	UpdateDraft(ctx context.Context, projectID int, sentenceID int64, draft string, meta model.Meta, expectedVersion int) error
}
