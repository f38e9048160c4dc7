package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
)

type fakeProjects struct {
	byID  map[int]*model.Project
	users map[int][]*model.ProjectUser
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{byID: map[int]*model.Project{}, users: map[int][]*model.ProjectUser{}}
}

func (f *fakeProjects) Create(ctx context.Context, p *model.Project) error {
	p.ID = len(f.byID) + 1
	f.byID[p.ID] = p
	return nil
}
func (f *fakeProjects) GetByID(ctx context.Context, id int) (*model.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "not found")
	}
	return p, nil
}
func (f *fakeProjects) List(ctx context.Context) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}
func (f *fakeProjects) Update(ctx context.Context, p *model.Project) error {
	f.byID[p.ID] = p
	return nil
}
func (f *fakeProjects) AddUser(ctx context.Context, pu *model.ProjectUser) error {
	f.users[pu.ProjectID] = append(f.users[pu.ProjectID], pu)
	return nil
}
func (f *fakeProjects) ListUsers(ctx context.Context, projectID int) ([]*model.ProjectUser, error) {
	return f.users[projectID], nil
}

type fakeSentences struct {
	inserted []*model.Sentence
}

func (f *fakeSentences) BulkInsert(ctx context.Context, projectID int, sentences []*model.Sentence) (int64, error) {
	f.inserted = append(f.inserted, sentences...)
	return int64(len(sentences)), nil
}
func (f *fakeSentences) GetByID(ctx context.Context, projectID int, sentenceID int64) (*model.Sentence, error) {
	return nil, apperrors.New(apperrors.CodeNotFound, "not found")
}
func (f *fakeSentences) ListByProject(ctx context.Context, projectID int) ([]*model.Sentence, error) {
	return nil, nil
}
func (f *fakeSentences) ListByIDRange(ctx context.Context, projectID int, minID, maxID int64) ([]*model.Sentence, error) {
	return nil, nil
}
func (f *fakeSentences) UpdateDraft(ctx context.Context, projectID int, sentenceID int64, draft string, meta model.Meta, expectedVersion int) error {
	return nil
}

func TestAddBook_SkipsMalformedRows(t *testing.T) {
	sentences := &fakeSentences{}
	svc := New(newFakeProjects(), sentences)

	records := []model.SourceRecord{
		{BookCode: "gen", Chapter: 1, Verse: 1, Text: "In the beginning"},
		{BookCode: "gen", Chapter: 0, Verse: 1, Text: "bad chapter"},
		{BookCode: "???", Chapter: 1, Verse: 2, Text: "unresolvable book"},
	}

	report, err := svc.AddBook(context.Background(), 1, records, func(code string) (int, error) {
		if code == "gen" {
			return 1, nil
		}
		return 0, assert.AnError
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.Inserted)
	require.Len(t, report.Skipped, 2)
	require.Len(t, sentences.inserted, 1)
	assert.EqualValues(t, 1001001, sentences.inserted[0].SentenceID)
}

func TestCreate_RejectsMissingLangs(t *testing.T) {
	svc := New(newFakeProjects(), &fakeSentences{})
	_, err := svc.Create(context.Background(), "demo", "", "hi", model.ProjectMeta{})
	require.Error(t, err)
}
