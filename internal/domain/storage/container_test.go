package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wandercritic/internal/domain/storage"
)

func TestContainer_WithTx_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_travel_agent = $1")).
		WithArgs(true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = storage.NewContainer(db).WithTx(context.Background(), func(tx *storage.Tx) error {
		return tx.Users.SetTravelAgent(context.Background(), 1, true)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContainer_WithTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = storage.NewContainer(db).WithTx(context.Background(), func(tx *storage.Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContainer_WithTx_NilDB(t *testing.T) {
	err := storage.NewContainer(nil).WithTx(context.Background(), func(*storage.Tx) error { return nil })
	assert.Error(t, err)
}
