package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"wandercritic/internal/auth"
	"wandercritic/internal/config"
	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/domain/users"
	mockmoderation "wandercritic/internal/moderation/mock"
)

type sentMail struct {
	Template string
	Username string
	Email    string
	Data     any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(templateFile, username, email string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{templateFile, username, email, data})
	return m.err
}

func (m *fakeMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type testApp struct {
	*application
	db     sqlmock.Sqlmock
	mod    *mockmoderation.MockModerator
	mailer *fakeMailer
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{Env: "test", FrontendURL: "http://localhost:3000", Addr: ":8080"}
	cfg.Auth.Basic.User = "ops"
	cfg.Auth.Basic.Pass = "s3cret"

	ctrl := gomock.NewController(t)
	mod := mockmoderation.NewMockModerator(ctrl)
	m := &fakeMailer{}

	app := &application{
		config:        cfg,
		store:         storage.NewContainer(sqlDB),
		moderation:    mod,
		logger:        zap.NewNop().Sugar(),
		mailer:        m,
		authenticator: auth.NewJWTAuthenticator("test-secret", "test-refresh", "wandercritic", time.Hour, 24*time.Hour),
	}

	return &testApp{application: app, db: mock, mod: mod, mailer: m}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withUser(r *http.Request, u *users.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userCtx, u))
}

func withPlace(r *http.Request, p *places.Place) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), placeCtx, p))
}

// decodeData unwraps the {"data": ...} envelope into v.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.NoError(t, json.Unmarshal(env.Data, v))
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.NewDecoder(strings.NewReader(rr.Body.String())).Decode(&body))
	return body
}

var (
	reader    = &users.User{ID: 3, Username: "iona", Email: "iona@example.com", IsActive: true}
	agent     = &users.User{ID: 4, Username: "callum", Email: "callum@example.com", IsActive: true, IsTravelAgent: true}
	superuser = &users.User{ID: 1, Username: "root", Email: "root@example.com", IsActive: true, IsSuperuser: true}
	glencoe   = &places.Place{ID: 7, Name: "Glencoe", Slug: "glencoe", CreatedBy: 4}
)
