package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wandercritic/internal/domain/applications"
	"wandercritic/internal/mailer"
	"wandercritic/internal/moderation"
)

type ApplicationPayload struct {
	FullName    string `json:"full_name" validate:"required,max=100"`
	CompanyName string `json:"company_name" validate:"max=100"`
	Experience  string `json:"experience" validate:"required"`
	Website     string `json:"website" validate:"omitempty,url,max=200"`
	Phone       string `json:"phone" validate:"required,max=20"`
}

// submitApplicationHandler godoc
//
//	@Summary		Apply to become a travel agent
//	@Description	Files an application for admin review. Only one application may be pending per user, and agents cannot apply.
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ApplicationPayload	true	"Application"
//	@Success		201		{object}	applications.Application
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		409		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/applications [post]
func (app *application) submitApplicationHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload ApplicationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	a, err := app.moderation.SubmitApplication(r.Context(), user.ID, moderation.ApplicationInput{
		FullName:    payload.FullName,
		CompanyName: payload.CompanyName,
		Experience:  payload.Experience,
		Website:     payload.Website,
		Phone:       payload.Phone,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, a); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myApplicationsHandler godoc
//
//	@Summary		My applications
//	@Tags			applications
//	@Produce		json
//	@Success		200	{array}	applications.Application
//	@Security		ApiKeyAuth
//	@Router			/applications/me [get]
func (app *application) myApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Applications.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listPendingApplicationsHandler godoc
//
//	@Summary		Pending applications
//	@Tags			admin
//	@Produce		json
//	@Success		200	{array}		applications.Application
//	@Failure		403	{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/applications [get]
func (app *application) listPendingApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Applications.ListByStatus(r.Context(), applications.StatusPending)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// applicationActionHandler godoc
//
//	@Summary		Approve or reject an application
//	@Description	Approving also makes the applicant a travel agent. The applicant is emailed the decision.
//	@Tags			admin
//	@Produce		json
//	@Param			applicationID	path		int		true	"Application ID"
//	@Param			action			path		string	true	"approve or reject"
//	@Success		200				{object}	applications.Application
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	ErrorBadRequestResponse
//	@Failure		409				{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/applications/{applicationID}/{action} [post]
func (app *application) applicationActionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "applicationID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid application ID"))
		return
	}

	var (
		a        *applications.Application
		template string
	)
	switch action := chi.URLParam(r, "action"); action {
	case "approve":
		a, err = app.moderation.ApproveApplication(r.Context(), id)
		template = mailer.ApplicationApprovedTemplate
	case "reject":
		a, err = app.moderation.RejectApplication(r.Context(), id)
		template = mailer.ApplicationRejectedTemplate
	default:
		app.badRequestResponse(w, r, fmt.Errorf("unknown action %q", action))
		return
	}
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	vars := struct {
		Username       string
		FullName       string
		ExploreURL     string
		CreatePlaceURL string
	}{
		Username:       a.Username,
		FullName:       a.FullName,
		ExploreURL:     fmt.Sprintf("%s/explore", app.config.FrontendURL),
		CreatePlaceURL: fmt.Sprintf("%s/places/new", app.config.FrontendURL),
	}

	// sent only after the decision has committed
	app.sendMail(template, a.Username, a.Email, vars)

	if err := app.jsonResponse(w, http.StatusOK, a); err != nil {
		app.internalServerError(w, r, err)
	}
}
