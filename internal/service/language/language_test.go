package language

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
)

type fakeRepo struct {
	byCode map[string]*model.Language
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byCode: map[string]*model.Language{}}
}

func (f *fakeRepo) Create(ctx context.Context, lang *model.Language) error {
	if _, ok := f.byCode[lang.Code]; ok {
		return apperrors.New(apperrors.CodeConflict, "duplicate code")
	}
	lang.ID = len(f.byCode) + 1
	f.byCode[lang.Code] = lang
	return nil
}

func (f *fakeRepo) GetByCode(ctx context.Context, code string) (*model.Language, error) {
	l, ok := f.byCode[code]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "not found")
	}
	return l, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (*model.Language, error) {
	for _, l := range f.byCode {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "not found")
}

func (f *fakeRepo) List(ctx context.Context) ([]*model.Language, error) {
	var out []*model.Language
	for _, l := range f.byCode {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	for code, l := range f.byCode {
		if l.ID == id {
			delete(f.byCode, code)
			return nil
		}
	}
	return apperrors.New(apperrors.CodeNotFound, "not found")
}

func TestCreate_NormalizesCode(t *testing.T) {
	svc := New(newFakeRepo())
	lang, err := svc.Create(context.Background(), " EN ", "English")
	require.NoError(t, err)
	assert.Equal(t, "en", lang.Code)
}

func TestCreate_RejectsEmptyCode(t *testing.T) {
	svc := New(newFakeRepo())
	_, err := svc.Create(context.Background(), "  ", "English")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err) == false)
}

func TestGetByCode_NotFound(t *testing.T) {
	svc := New(newFakeRepo())
	_, err := svc.GetByCode(context.Background(), "xx")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
