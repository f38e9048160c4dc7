package trmemory

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestTranslationMemoryRepository_Upsert_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, translations FROM translation_memory").
		WithArgs("en", "hi", "beginning").
		WillReturnRows(mock.NewRows([]string{"id", "translations"}))
	mock.ExpectQuery("SELECT meta_data FROM translation_memory").
		WithArgs("en", "beginning").
		WillReturnRows(mock.NewRows([]string{"meta_data"}))
	mock.ExpectExec("INSERT INTO translation_memory").
		WithArgs("en", "hi", "beginning", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.Upsert(context.Background(), "en", "hi", "beginning", "आरंभ", 2)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslationMemoryRepository_Upsert_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, translations FROM translation_memory").
		WithArgs("en", "hi", "beginning").
		WillReturnRows(mock.NewRows([]string{"id", "translations"}).
			AddRow(1, []byte(`{"आरंभ":{"frequency":3}}`)))
	mock.ExpectExec("UPDATE translation_memory SET translations").
		WithArgs(pgxmock.AnyArg(), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err = repo.Upsert(context.Background(), "en", "hi", "beginning", "आरंभ", 2)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
