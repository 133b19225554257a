package main

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wandercritic/internal/domain/websitereviews"
	"wandercritic/internal/serrors"
)

var websiteReviewCols = []string{"id", "user_id", "rating", "content", "role", "is_visible", "created_at", "username"}

func expectWebsiteReview(app *testApp, id, userID int64, visible bool) {
	app.db.ExpectQuery(regexp.QuoteMeta(`FROM website_reviews w`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(websiteReviewCols).
			AddRow(id, userID, 5, "Found my favourite glen here", "Traveler", visible, time.Now(), "iona"))
}

func TestSubmitWebsiteReviewHandler(t *testing.T) {
	app := newTestApplication(t)

	app.mod.EXPECT().SubmitWebsiteReview(gomock.Any(), reader.ID, 5, "Found my favourite glen here").
		Return(&websitereviews.WebsiteReview{ID: 1, UserID: 3, Rating: 5, Role: "Traveler", IsVisible: true}, nil)

	r := jsonRequest(t, http.MethodPut, "/v1/website-reviews", WebsiteReviewPayload{Rating: 5, Content: "Found my favourite glen here"})
	rr := httptest.NewRecorder()

	app.submitWebsiteReviewHandler(rr, withUser(r, reader))

	require.Equal(t, http.StatusOK, rr.Code)
	var got websitereviews.WebsiteReview
	decodeData(t, rr, &got)
	assert.Equal(t, "Traveler", got.Role)
}

func TestSubmitWebsiteReviewHandler_BadRating(t *testing.T) {
	app := newTestApplication(t)

	app.mod.EXPECT().SubmitWebsiteReview(gomock.Any(), reader.ID, 0, "meh").
		Return(nil, serrors.With(serrors.ErrBadRequest, "rating must be between 1 and 5"))

	r := jsonRequest(t, http.MethodPut, "/v1/website-reviews", `{"rating": 0, "content": "meh"}`)
	rr := httptest.NewRecorder()

	app.submitWebsiteReviewHandler(rr, withUser(r, reader))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteWebsiteReviewHandler(t *testing.T) {
	t.Run("someone else's review", func(t *testing.T) {
		app := newTestApplication(t)
		expectWebsiteReview(app, 1, 99, true)

		r := withURLParams(httptest.NewRequest(http.MethodDelete, "/v1/website-reviews/1", nil), "reviewID", "1")
		rr := httptest.NewRecorder()

		app.deleteWebsiteReviewHandler(rr, withUser(r, reader))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("author", func(t *testing.T) {
		app := newTestApplication(t)
		expectWebsiteReview(app, 1, reader.ID, true)
		app.db.ExpectExec(regexp.QuoteMeta(`DELETE FROM website_reviews`)).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		r := withURLParams(httptest.NewRequest(http.MethodDelete, "/v1/website-reviews/1", nil), "reviewID", "1")
		rr := httptest.NewRecorder()

		app.deleteWebsiteReviewHandler(rr, withUser(r, reader))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.NoError(t, app.db.ExpectationsWereMet())
	})
}

func TestSetWebsiteReviewVisibilityHandler(t *testing.T) {
	app := newTestApplication(t)
	expectWebsiteReview(app, 1, reader.ID, true)
	app.db.ExpectExec(regexp.QuoteMeta(`UPDATE website_reviews SET is_visible = $1 WHERE id = $2`)).
		WithArgs(false, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := jsonRequest(t, http.MethodPatch, "/v1/admin/website-reviews/1", `{"is_visible": false}`)
	r = withURLParams(withUser(r, superuser), "reviewID", "1")
	rr := httptest.NewRecorder()

	app.setWebsiteReviewVisibilityHandler(rr, r)

	require.Equal(t, http.StatusOK, rr.Code)
	var got websitereviews.WebsiteReview
	decodeData(t, rr, &got)
	assert.False(t, got.IsVisible)
}
