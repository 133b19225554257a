package reviews_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wandercritic/internal/domain/reviews"
)

func TestRepository_Upsert(t *testing.T) {
	tests := []struct {
		name        string
		inserted    bool
		wantCreated bool
	}{
		{name: "first review inserts", inserted: true, wantCreated: true},
		{name: "second review updates", inserted: false, wantCreated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (place_id, user_id)")).
				WithArgs(int64(1), int64(7), 5, "Stunning").
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "inserted"}).
					AddRow(int64(3), time.Now(), time.Now(), tt.inserted))

			rv := &reviews.Review{PlaceID: 1, UserID: 7, Rating: 5, Comment: "Stunning"}
			created, err := reviews.NewRepository(db).Upsert(context.Background(), rv)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			assert.Equal(t, int64(3), rv.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(id), COALESCE(SUM(rating), 0)")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(2, 8))

	count, sum, err := reviews.NewRepository(db).Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(8), sum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = reviews.NewRepository(db).GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, reviews.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, reviews.NewRepository(db).Delete(context.Background(), 4), reviews.ErrNotFound)
}

func TestValidRating(t *testing.T) {
	for r, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		assert.Equal(t, want, reviews.ValidRating(r), "rating %d", r)
	}
}
