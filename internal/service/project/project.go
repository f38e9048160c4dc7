// Package project implements the Project service: project/membership CRUD
// plus book ingestion, the operation that turns parsed source records into
// fresh Sentences (spec.md §3 "Lifecycle": "Sentences are created when a
// book is added to a project").
package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
)

// BookNumberLookup resolves a USFM book code ("gen", "exo", ...) to its
// Bible book number (1-66). The engine has no canonical book-code table of
// its own (spec.md's glossary doesn't define one); callers supply it.
type BookNumberLookup func(bookCode string) (int, error)

// RowError is one ingestion row that failed and was skipped.
type RowError struct {
	Index int
	Err   error
}

// IngestReport is AddBook's per-row result: never abort the whole batch on
// a malformed row (spec.md §7 "Malformed Input ... logged and skipped
// row-by-row during ingestion").
type IngestReport struct {
	Inserted int64
	Skipped  []RowError
}

// Service is the Project use-case surface the CLI/API layer drives.
type Service interface {
	Create(ctx context.Context, name, srcLang, trgLang string, meta model.ProjectMeta) (*model.Project, error)
	GetByID(ctx context.Context, id int) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	AddUser(ctx context.Context, projectID, userID int, role string) error
	ListUsers(ctx context.Context, projectID int) ([]*model.ProjectUser, error)
	AddBook(ctx context.Context, projectID int, records []model.SourceRecord, bookNumber BookNumberLookup) (IngestReport, error)
}

type service struct {
	projects  repository.ProjectRepository
	sentences repository.SentenceRepository
}

// New builds a Service over the given repositories.
func New(projects repository.ProjectRepository, sentences repository.SentenceRepository) Service {
	return &service{projects: projects, sentences: sentences}
}

func (s *service) Create(ctx context.Context, name, srcLang, trgLang string, meta model.ProjectMeta) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "project name must not be empty")
	}
	if srcLang == "" || trgLang == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "project requires both srcLang and trgLang")
	}

	p := &model.Project{
		Name:     name,
		SrcLang:  srcLang,
		TrgLang:  trgLang,
		MetaData: meta,
		Active:   true,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*model.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*model.Project, error) {
	return s.projects.List(ctx)
}

func (s *service) Update(ctx context.Context, p *model.Project) error {
	return s.projects.Update(ctx, p)
}

func (s *service) AddUser(ctx context.Context, projectID, userID int, role string) error {
	return s.projects.AddUser(ctx, &model.ProjectUser{ProjectID: projectID, UserID: userID, Role: role, Active: true})
}

func (s *service) ListUsers(ctx context.Context, projectID int) ([]*model.ProjectUser, error) {
	return s.projects.ListUsers(ctx, projectID)
}

// AddBook turns records into fresh, untranslated Sentences and bulk-inserts
// them. Each record's sentenceId is book*1_000_000 + chapter*1_000 + verse
// (spec.md §3); a record that doesn't resolve to a valid Bible sentenceId
// is skipped and reported rather than failing the whole call.
func (s *service) AddBook(ctx context.Context, projectID int, records []model.SourceRecord, bookNumber BookNumberLookup) (IngestReport, error) {
	var report IngestReport
	var batch []*model.Sentence

	for i, rec := range records {
		sentenceID, surrogateID, err := resolveSentenceID(rec, bookNumber)
		if err != nil {
			log.Warn().Int("row", i).Str("bookCode", rec.BookCode).Err(err).Msg("skipping malformed source record")
			report.Skipped = append(report.Skipped, RowError{Index: i, Err: err})
			continue
		}

		batch = append(batch, &model.Sentence{
			SentenceID:  sentenceID,
			SurrogateID: surrogateID,
			ProjectID:   projectID,
			Sentence:    rec.Text,
			Draft:       rec.Text,
			DraftMeta:   model.FreshMeta(len(rec.Text)),
		})
	}

	if len(batch) == 0 {
		return report, nil
	}

	inserted, err := s.sentences.BulkInsert(ctx, projectID, batch)
	if err != nil {
		return report, err
	}
	report.Inserted = inserted
	return report, nil
}

func resolveSentenceID(rec model.SourceRecord, bookNumber BookNumberLookup) (int64, string, error) {
	if strings.TrimSpace(rec.Text) == "" {
		return 0, "", apperrors.New(apperrors.CodeMalformed, "empty text")
	}
	if rec.Chapter <= 0 || rec.Verse <= 0 {
		return 0, "", apperrors.New(apperrors.CodeMalformed, "chapter and verse must be positive")
	}

	book, err := bookNumber(rec.BookCode)
	if err != nil {
		return 0, "", apperrors.Wrap(err, apperrors.CodeMalformed, fmt.Sprintf("unresolvable book code %q", rec.BookCode))
	}

	id := int64(book)*1_000_000 + int64(rec.Chapter)*1_000 + int64(rec.Verse)
	if id < model.MinBibleSentenceID || id > model.MaxBibleSentenceID {
		return 0, "", apperrors.New(apperrors.CodeMalformed, fmt.Sprintf("sentenceId %d outside Bible range", id))
	}

	surrogateID := fmt.Sprintf("%s.%d.%d", rec.BookCode, rec.Chapter, rec.Verse)
	return id, surrogateID, nil
}
