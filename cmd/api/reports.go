package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wandercritic/internal/domain/reports"
	"wandercritic/internal/moderation"
	"wandercritic/internal/params"
)

const reportsPerPage = 10

type ReportPayload struct {
	ReportType  string `json:"report_type" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
}

type BugReportPayload struct {
	ReportType  string `json:"report_type"`
	Description string `json:"description" validate:"required,max=2000"`
	URL         string `json:"url" validate:"max=500"`
}

func (app *application) fileReport(w http.ResponseWriter, r *http.Request, in moderation.ReportInput) {
	rp, err := app.moderation.FileReport(r.Context(), in)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, reportView{Report: *rp, Target: rp.Target()}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) readReportPayload(w http.ResponseWriter, r *http.Request) (*ReportPayload, bool) {
	var payload ReportPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}
	return &payload, true
}

// reportPlaceHandler godoc
//
//	@Summary		Report a place
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string			true	"Place slug"
//	@Param			payload	body		ReportPayload	true	"inappropriate, spam, misinformation or other"
//	@Success		201		{object}	reportView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug}/reports [post]
func (app *application) reportPlaceHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	payload, ok := app.readReportPayload(w, r)
	if !ok {
		return
	}

	app.fileReport(w, r, moderation.ReportInput{
		ReporterID:  user.ID,
		PlaceID:     &place.ID,
		ReportType:  reports.Type(payload.ReportType),
		ContentType: reports.ContentPlace,
		Description: payload.Description,
	})
}

// reportReviewHandler godoc
//
//	@Summary		Report a review
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			slug		path		string			true	"Place slug"
//	@Param			reviewID	path		int				true	"Review ID"
//	@Param			payload		body		ReportPayload	true	"Report"
//	@Success		201			{object}	reportView
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug}/reviews/{reviewID}/reports [post]
func (app *application) reportReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	payload, ok := app.readReportPayload(w, r)
	if !ok {
		return
	}

	app.fileReport(w, r, moderation.ReportInput{
		ReporterID:  user.ID,
		PlaceID:     &place.ID,
		ReviewID:    &reviewID,
		ReportType:  reports.Type(payload.ReportType),
		ContentType: reports.ContentReview,
		Description: payload.Description,
	})
}

// bugReportURL keeps only the path of the reported page and re-roots it on
// this host, so reports never carry foreign hosts or query strings.
func bugReportURL(r *http.Request, raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, u.Path)
}

// reportBugHandler godoc
//
//	@Summary		Report a bug
//	@Description	Files a bug report for a page of the site. The url is reduced to its path on this host.
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		BugReportPayload	true	"Bug report"
//	@Success		201		{object}	reportView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/bug-reports [post]
func (app *application) reportBugHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload BugReportPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	raw := payload.URL
	if raw == "" {
		raw = r.URL.Query().Get("url")
	}

	reportType := reports.Type(payload.ReportType)
	if reportType == "" {
		reportType = reports.TypeOther
	}

	app.fileReport(w, r, moderation.ReportInput{
		ReporterID:  user.ID,
		ReportType:  reportType,
		ContentType: reports.ContentBug,
		Description: payload.Description,
		URL:         bugReportURL(r, raw),
	})
}

type ReportListResponse struct {
	Reports    []reportView      `json:"reports"`
	Pagination params.Pagination `json:"pagination"`
}

// listReportsHandler godoc
//
//	@Summary		List reports
//	@Description	All reports, newest first, ten per page.
//	@Tags			admin
//	@Produce		json
//	@Param			page	query		int	false	"Page number"	default(1)
//	@Success		200		{object}	ReportListResponse
//	@Failure		403		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/reports [get]
func (app *application) listReportsHandler(w http.ResponseWriter, r *http.Request) {
	pg := params.Fixed(r.URL.Query(), reportsPerPage)

	list, total, err := app.store.Reports.List(r.Context(), pg.Limit, pg.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pg.ComputeMeta(total)

	resp := ReportListResponse{Reports: newReportViews(list), Pagination: pg}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// reportActionHandler godoc
//
//	@Summary		Resolve or dismiss a report
//	@Description	Moves a pending report to resolved or dismissed. Closed reports cannot change again.
//	@Tags			admin
//	@Produce		json
//	@Param			reportID	path		int		true	"Report ID"
//	@Param			action		path		string	true	"resolve or dismiss"
//	@Success		200			{object}	reportView
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	ErrorBadRequestResponse
//	@Failure		409			{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/reports/{reportID}/{action} [post]
func (app *application) reportActionHandler(w http.ResponseWriter, r *http.Request) {
	admin := getUserFromContext(r)

	reportID, err := strconv.ParseInt(chi.URLParam(r, "reportID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid report ID"))
		return
	}

	var rp *reports.Report
	switch action := chi.URLParam(r, "action"); action {
	case "resolve":
		rp, err = app.moderation.ResolveReport(r.Context(), reportID, admin.ID)
	case "dismiss":
		rp, err = app.moderation.DismissReport(r.Context(), reportID, admin.ID)
	default:
		app.badRequestResponse(w, r, fmt.Errorf("unknown action %q", action))
		return
	}
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reportView{Report: *rp, Target: rp.Target()}); err != nil {
		app.internalServerError(w, r, err)
	}
}
