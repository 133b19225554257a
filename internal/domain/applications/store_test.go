package applications_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wandercritic/internal/domain/applications"
)

var appCols = []string{
	"id", "user_id", "full_name", "company_name", "experience", "website", "phone",
	"status", "created_at", "updated_at", "username", "email",
}

func TestRepository_Create(t *testing.T) {
	in := applications.CreateInput{
		UserID: 4, FullName: "Morag Stewart", Experience: "10 years guiding", Phone: "0131 555 0101",
	}

	t.Run("created as pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO travel_agent_applications")).
			WithArgs(int64(4), "Morag Stewart", "", "10 years guiding", "", "0131 555 0101").
			WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
				AddRow(int64(1), "pending", time.Now(), time.Now()))

		a, err := applications.NewRepository(db).Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, applications.StatusPending, a.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second pending hits the partial unique index", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO travel_agent_applications")).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "travel_agent_applications_one_pending"})

		_, err = applications.NewRepository(db).Create(context.Background(), in)
		assert.ErrorIs(t, err, applications.ErrPendingExists)
	})
}

func TestRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1 FOR UPDATE OF a")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(appCols).
			AddRow(int64(2), int64(4), "Morag Stewart", "", "x", "", "1", "approved", now, now, "morag", "morag@example.com"))

	a, err := applications.NewRepository(db).GetByIDForUpdate(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, applications.StatusApproved, a.Status)
	assert.Equal(t, "morag@example.com", a.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetPendingByUser_None(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.user_id = $1 AND a.status = 'pending'")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(appCols))

	_, err = applications.NewRepository(db).GetPendingByUser(context.Background(), 4)
	assert.ErrorIs(t, err, applications.ErrNotFound)
}

func TestRepository_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE travel_agent_applications")).
		WithArgs(applications.StatusRejected, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, applications.NewRepository(db).SetStatus(context.Background(), 2, applications.StatusRejected))
	require.NoError(t, mock.ExpectationsWereMet())
}
