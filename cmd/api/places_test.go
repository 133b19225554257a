package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/users"
	"wandercritic/internal/slug"
)

func TestExplorePlacesHandler_RejectsBadFilters(t *testing.T) {
	for _, query := range []string{"?sort=cheapest", "?budget_range=free"} {
		t.Run(query, func(t *testing.T) {
			app := newTestApplication(t)
			rr := httptest.NewRecorder()

			app.explorePlacesHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/places"+query, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NoError(t, app.db.ExpectationsWereMet())
		})
	}
}

func TestUniquePlaceSlug(t *testing.T) {
	slugExists := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM places WHERE slug = $1)`)
	existsRow := func(b bool) *sqlmock.Rows { return sqlmock.NewRows([]string{"exists"}).AddRow(b) }

	t.Run("free name", func(t *testing.T) {
		app := newTestApplication(t)
		app.db.ExpectQuery(slugExists).WithArgs("isle-of-skye").WillReturnRows(existsRow(false))

		got, err := app.uniquePlaceSlug(context.Background(), "Isle of Skye", agent.ID)
		require.NoError(t, err)
		assert.Equal(t, "isle-of-skye", got)
	})

	t.Run("taken name gets a suffix", func(t *testing.T) {
		app := newTestApplication(t)
		d, err := slug.NewDisambiguator("test-salt")
		require.NoError(t, err)
		app.slugs = d

		app.db.ExpectQuery(slugExists).WithArgs("isle-of-skye").WillReturnRows(existsRow(true))
		app.db.ExpectQuery(slugExists).WillReturnRows(existsRow(false))

		got, err := app.uniquePlaceSlug(context.Background(), "Isle of Skye", agent.ID)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "isle-of-skye-"), got)
		assert.NoError(t, app.db.ExpectationsWereMet())
	})

	t.Run("gives up", func(t *testing.T) {
		app := newTestApplication(t)
		d, err := slug.NewDisambiguator("test-salt")
		require.NoError(t, err)
		app.slugs = d

		for range maxSlugAttempts {
			app.db.ExpectQuery(slugExists).WillReturnRows(existsRow(true))
		}

		_, err = app.uniquePlaceSlug(context.Background(), "Isle of Skye", agent.ID)
		assert.ErrorIs(t, err, places.ErrDuplicateSlug)
	})
}

func TestValidBudget(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	zero := decimal.Zero
	assert.True(t, validBudget(nil))
	assert.True(t, validBudget(&zero))
	assert.False(t, validBudget(&neg))
}

func TestCanEditPlace(t *testing.T) {
	other := &users.User{ID: 9, IsTravelAgent: true}

	assert.True(t, canEditPlace(agent, glencoe))
	assert.True(t, canEditPlace(superuser, glencoe))
	assert.False(t, canEditPlace(other, glencoe))
	assert.False(t, canEditPlace(reader, glencoe))
}

func TestDeletePlaceHandler_ForbidsNonCreators(t *testing.T) {
	app := newTestApplication(t)

	r := httptest.NewRequest(http.MethodDelete, "/v1/places/glencoe", nil)
	rr := httptest.NewRecorder()

	app.deletePlaceHandler(rr, withPlace(withUser(r, reader), glencoe))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
