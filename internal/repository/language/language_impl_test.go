package language

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
)

func TestLanguageRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	lang := &model.Language{Code: "hi", Name: "Hindi"}

	rows := mock.NewRows([]string{"id"}).AddRow(1)
	mock.ExpectQuery("INSERT INTO languages").
		WithArgs(lang.Code, lang.Name).
		WillReturnRows(rows)

	require.NoError(t, repo.Create(context.Background(), lang))
	assert.Equal(t, 1, lang.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguageRepository_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	lang := &model.Language{Code: "hi", Name: "Hindi"}

	mock.ExpectQuery("INSERT INTO languages").
		WithArgs(lang.Code, lang.Name).
		WillReturnError(errors.New("duplicate key value violates unique constraint \"languages_code_key\""))

	err = repo.Create(context.Background(), lang)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguageRepository_GetByCode_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectQuery("SELECT id, code, name FROM languages WHERE code").
		WithArgs("xx").
		WillReturnRows(mock.NewRows([]string{"id", "code", "name"}))

	_, err = repo.GetByCode(context.Background(), "xx")
	require.Error(t, err)
	var ae *apperrors.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperrors.CodeNotFound, ae.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguageRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	rows := mock.NewRows([]string{"id", "code", "name"}).
		AddRow(1, "en", "English").
		AddRow(2, "hi", "Hindi")
	mock.ExpectQuery("SELECT id, code, name FROM languages ORDER BY code").
		WillReturnRows(rows)

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "en", out[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
