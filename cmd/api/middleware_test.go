package main

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wandercritic/internal/domain/users"
	"wandercritic/internal/ratelimiter"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

var userCols = []string{
	"id", "username", "email", "password", "first_name", "last_name", "bio",
	"profile_picture_url", "contact_number", "company_name", "company_website",
	"is_travel_agent", "is_superuser", "is_active", "created_at", "updated_at",
}

func userRow(id int64, username string, active bool) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(userCols).AddRow(
		id, username, username+"@example.com", []byte("hash"), "", "", "",
		nil, "", "", "", false, false, active, now, now,
	)
}

func TestBasicAuthMiddleware(t *testing.T) {
	basic := func(user, pass string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Bearer abc", http.StatusUnauthorized},
		{"bad base64", "Basic %%%", http.StatusUnauthorized},
		{"wrong password", basic("ops", "nope"), http.StatusUnauthorized},
		{"valid", basic("ops", "s3cret"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)

			r := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			app.BasicAuthMiddleware()(okHandler).ServeHTTP(rr, r)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAuthTokenMiddleware(t *testing.T) {
	app := newTestApplication(t)

	access, _, err := app.authenticator.GenerateTokens(3, roleUser)
	require.NoError(t, err)

	app.db.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(userRow(3, "iona", true))

	var seen *users.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getUserFromContext(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	r.Header.Set("Authorization", "Bearer "+access)
	rr := httptest.NewRecorder()

	app.AuthTokenMiddleware(next).ServeHTTP(rr, r)

	require.NotNil(t, seen)
	assert.Equal(t, "iona", seen.Username)
	assert.NoError(t, app.db.ExpectationsWereMet())
}

func TestAuthTokenMiddleware_Rejects(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		app := newTestApplication(t)

		r := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()

		app.AuthTokenMiddleware(okHandler).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("disabled account", func(t *testing.T) {
		app := newTestApplication(t)

		access, _, err := app.authenticator.GenerateTokens(3, roleUser)
		require.NoError(t, err)
		app.db.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnRows(userRow(3, "iona", false))

		r := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
		r.Header.Set("Authorization", "Bearer "+access)
		rr := httptest.NewRecorder()

		app.AuthTokenMiddleware(okHandler).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestOptionalAuthMiddleware_IgnoresBadToken(t *testing.T) {
	app := newTestApplication(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, getUserFromContext(r))
	})

	r := httptest.NewRequest(http.MethodGet, "/v1/places/glencoe", nil)
	r.Header.Set("Authorization", "Bearer expired")
	app.OptionalAuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, called)
}

func TestRoleMiddlewares(t *testing.T) {
	tests := []struct {
		name       string
		user       *users.User
		superuser  int
		travelling int
	}{
		{"anonymous", nil, http.StatusUnauthorized, http.StatusUnauthorized},
		{"plain user", reader, http.StatusForbidden, http.StatusForbidden},
		{"travel agent", agent, http.StatusForbidden, http.StatusOK},
		{"superuser", superuser, http.StatusOK, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)

			request := func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/v1/admin/reports", nil)
				if tt.user != nil {
					r = withUser(r, tt.user)
				}
				return r
			}

			rr := httptest.NewRecorder()
			app.RequireSuperuser(okHandler).ServeHTTP(rr, request())
			assert.Equal(t, tt.superuser, rr.Code)

			rr = httptest.NewRecorder()
			app.RequireTravelAgent(okHandler).ServeHTTP(rr, request())
			assert.Equal(t, tt.travelling, rr.Code)
		})
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	app := newTestApplication(t)
	app.config.RateLimiter.Enabled = true
	app.rateLimiter = ratelimiter.NewFixedWindowLimiter(2, time.Minute)

	handler := app.RateLimiterMiddleware(okHandler)
	do := func(addr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/v1/home", nil)
		r.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, r)
		return rr
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:5001").Code)

	limited := do("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do("10.0.0.2:5000").Code)
}

func TestRateLimiterMiddleware_Disabled(t *testing.T) {
	app := newTestApplication(t)
	app.rateLimiter = ratelimiter.NewFixedWindowLimiter(1, time.Minute)

	for range 3 {
		rr := httptest.NewRecorder()
		app.RateLimiterMiddleware(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/home", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}
