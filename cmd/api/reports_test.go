package main

import (
	"crypto/tls"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wandercritic/internal/domain/reports"
	"wandercritic/internal/moderation"
	"wandercritic/internal/serrors"
)

func TestBugReportURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		tls  bool
		want string
	}{
		{"empty", "", false, ""},
		{"foreign host is replaced", "https://evil.example/places/glencoe?ref=x", false, "http://wandercritic.test/places/glencoe"},
		{"bare path", "/explore", false, "http://wandercritic.test/explore"},
		{"fragment dropped", "/places/skye#reviews", true, "https://wandercritic.test/places/skye"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/v1/bug-reports", nil)
			r.Host = "wandercritic.test"
			if tt.tls {
				r.TLS = &tls.ConnectionState{}
			}
			assert.Equal(t, tt.want, bugReportURL(r, tt.raw))
		})
	}
}

func TestReportBugHandler_DefaultsAndQueryURL(t *testing.T) {
	app := newTestApplication(t)

	app.mod.EXPECT().FileReport(gomock.Any(), moderation.ReportInput{
		ReporterID:  3,
		ReportType:  reports.TypeOther,
		ContentType: reports.ContentBug,
		Description: "Map does not load",
		URL:         "http://wandercritic.test/places/glencoe",
	}).Return(&reports.Report{
		ID:          2,
		ReporterID:  sql.NullInt64{Int64: 3, Valid: true},
		ReportType:  reports.TypeOther,
		ContentType: reports.ContentBug,
		Description: "Map does not load",
		URL:         "http://wandercritic.test/places/glencoe",
		Status:      reports.StatusPending,
	}, nil)

	r := jsonRequest(t, http.MethodPost, "/v1/bug-reports?url=/places/glencoe", BugReportPayload{Description: "Map does not load"})
	r.Host = "wandercritic.test"
	rr := httptest.NewRecorder()

	app.reportBugHandler(rr, withUser(r, reader))

	require.Equal(t, http.StatusCreated, rr.Code)
	var got map[string]any
	decodeData(t, rr, &got)
	assert.Equal(t, "http://wandercritic.test/places/glencoe", got["target"])
	assert.Equal(t, "pending", got["status"])
}

func TestReportPlaceHandler(t *testing.T) {
	app := newTestApplication(t)

	placeID := glencoe.ID
	app.mod.EXPECT().FileReport(gomock.Any(), moderation.ReportInput{
		ReporterID:  3,
		PlaceID:     &placeID,
		ReportType:  reports.TypeSpam,
		ContentType: reports.ContentPlace,
		Description: "Advert for a hotel",
	}).Return(&reports.Report{
		ID:          4,
		PlaceID:     sql.NullInt64{Int64: 7, Valid: true},
		PlaceName:   sql.NullString{String: "Glencoe", Valid: true},
		ReportType:  reports.TypeSpam,
		ContentType: reports.ContentPlace,
		Status:      reports.StatusPending,
	}, nil)

	r := jsonRequest(t, http.MethodPost, "/v1/places/glencoe/reports", ReportPayload{ReportType: "spam", Description: "Advert for a hotel"})
	rr := httptest.NewRecorder()

	app.reportPlaceHandler(rr, withPlace(withUser(r, reader), glencoe))

	require.Equal(t, http.StatusCreated, rr.Code)
	var got map[string]any
	decodeData(t, rr, &got)
	assert.Equal(t, "Glencoe", got["target"])
}

func TestReportActionHandler(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		action string
		setup  func(app *testApp)
		want   int
	}{
		{
			name:   "resolve",
			id:     "4",
			action: "resolve",
			setup: func(app *testApp) {
				app.mod.EXPECT().ResolveReport(gomock.Any(), int64(4), superuser.ID).
					Return(&reports.Report{ID: 4, Status: reports.StatusResolved}, nil)
			},
			want: http.StatusOK,
		},
		{
			name:   "dismiss closed report",
			id:     "4",
			action: "dismiss",
			setup: func(app *testApp) {
				app.mod.EXPECT().DismissReport(gomock.Any(), int64(4), superuser.ID).
					Return(nil, serrors.With(serrors.ErrConflict, "report is already resolved"))
			},
			want: http.StatusConflict,
		},
		{
			name:   "unknown action",
			id:     "4",
			action: "archive",
			want:   http.StatusBadRequest,
		},
		{
			name:   "bad id",
			id:     "x",
			action: "resolve",
			want:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			if tt.setup != nil {
				tt.setup(app)
			}

			rr := httptest.NewRecorder()
			app.reportActionHandler(rr, actionRequest("/v1/admin/reports", "reportID", tt.id, tt.action))

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
