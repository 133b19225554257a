package main

import (
	"errors"
	"net/http"

	"wandercritic/internal/domain/reports"
	"wandercritic/internal/domain/users"
)

// getMeHandler godoc
//
//	@Summary		Current user
//	@Description	Returns the authenticated user's profile.
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getMeHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, getUserFromContext(r)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateProfilePayload struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=150"`
	LastName       *string `json:"last_name" validate:"omitempty,max=150"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Bio            *string `json:"bio" validate:"omitempty,max=500"`
	ContactNumber  *string `json:"contact_number" validate:"omitempty,max=20"`
	CompanyName    *string `json:"company_name" validate:"omitempty,max=100"`
	CompanyWebsite *string `json:"company_website" validate:"omitempty,url,max=200"`
}

// updateMeHandler godoc
//
//	@Summary		Edit profile
//	@Description	Partially updates the authenticated user's profile; omitted fields are left unchanged.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateProfilePayload	true	"Fields to change"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		409		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me [patch]
func (app *application) updateMeHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload UpdateProfilePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Users.UpdateProfile(r.Context(), user.ID, users.ProfileUpdate{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		Bio:            payload.Bio,
		ContactNumber:  payload.ContactNumber,
		CompanyName:    payload.CompanyName,
		CompanyWebsite: payload.CompanyWebsite,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateEmail):
			app.conflictResponse(w, r, err)
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// changePasswordHandler godoc
//
//	@Summary		Change password
//	@Tags			users
//	@Accept			json
//	@Param			payload	body	ChangePasswordPayload	true	"Current and new password"
//	@Success		204
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		403	{object}	ErrorBadRequestResponse	"Current password is wrong"
//	@Security		ApiKeyAuth
//	@Router			/users/me/password [put]
func (app *application) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload ChangePasswordPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := user.Password.Compare(payload.CurrentPassword); err != nil {
		app.forbiddenResponse(w, r, errors.New("current password is incorrect"))
		return
	}

	var pw users.Password
	if err := pw.Set(payload.NewPassword); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SetPassword(r.Context(), user.ID, pw); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadProfilePictureHandler godoc
//
//	@Summary		Upload profile picture
//	@Description	Replaces the user's profile picture. The previous image is removed from storage.
//	@Tags			users
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Profile picture"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me/profile-picture [post]
func (app *application) uploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if app.uploader == nil {
		app.internalServerError(w, r, ErrUploadsDisabled)
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		app.badRequestResponse(w, r, errors.New("unable to parse form data"))
		return
	}

	_, fh, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("an image file is required"))
		return
	}

	file, err := openImage(fh)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	secureURL, _, err := app.uploader.Upload(r.Context(), file, profilePicturesFolder)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SetProfilePicture(r.Context(), user.ID, secureURL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if user.ProfilePictureURL.Valid && user.ProfilePictureURL.String != "" {
		if publicID, err := extractPublicIDFromURL(user.ProfilePictureURL.String); err == nil {
			if err := app.uploader.Destroy(r.Context(), publicID); err != nil {
				app.logger.Warnw("could not delete old profile picture", "user_id", user.ID, "error", err)
			}
		}
	}

	user.ProfilePictureURL.String, user.ProfilePictureURL.Valid = secureURL, true

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myPlacesHandler godoc
//
//	@Summary		Places created by me
//	@Tags			users
//	@Produce		json
//	@Success		200	{array}	places.Place
//	@Security		ApiKeyAuth
//	@Router			/users/me/places [get]
func (app *application) myPlacesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Places.ListByCreator(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// reportView adds the display target to a report.
type reportView struct {
	reports.Report
	Target string `json:"target"`
}

func newReportViews(list []reports.Report) []reportView {
	views := make([]reportView, 0, len(list))
	for i := range list {
		views = append(views, reportView{Report: list[i], Target: list[i].Target()})
	}
	return views
}

// myReportsHandler godoc
//
//	@Summary		Reports filed by me
//	@Tags			users
//	@Produce		json
//	@Success		200	{array}	reportView
//	@Security		ApiKeyAuth
//	@Router			/users/me/reports [get]
func (app *application) myReportsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Reports.ListByReporter(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, newReportViews(list)); err != nil {
		app.internalServerError(w, r, err)
	}
}
