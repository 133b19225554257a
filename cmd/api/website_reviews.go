package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wandercritic/internal/domain/websitereviews"
)

type WebsiteReviewPayload struct {
	Rating  int    `json:"rating"`
	Content string `json:"content" validate:"max=1000"`
}

// submitWebsiteReviewHandler godoc
//
//	@Summary		Review the site
//	@Description	Creates or replaces the caller's review of WanderCritic itself.
//	@Tags			website-reviews
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		WebsiteReviewPayload	true	"Rating 1-5 and content"
//	@Success		200		{object}	websitereviews.WebsiteReview
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/website-reviews [put]
func (app *application) submitWebsiteReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload WebsiteReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.moderation.SubmitWebsiteReview(r.Context(), user.ID, payload.Rating, payload.Content)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) websiteReviewFromPath(w http.ResponseWriter, r *http.Request) (*websitereviews.WebsiteReview, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return nil, false
	}

	review, err := app.store.WebsiteReviews.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, websitereviews.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return nil, false
	}
	return review, true
}

// deleteWebsiteReviewHandler godoc
//
//	@Summary		Delete a website review
//	@Description	The author or an admin may delete it.
//	@Tags			website-reviews
//	@Param			reviewID	path	int	true	"Website review ID"
//	@Success		204
//	@Failure		403	{object}	ErrorBadRequestResponse
//	@Failure		404	{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/website-reviews/{reviewID} [delete]
func (app *application) deleteWebsiteReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	review, ok := app.websiteReviewFromPath(w, r)
	if !ok {
		return
	}
	if review.UserID != user.ID && !user.IsSuperuser {
		app.forbiddenResponse(w, r, errors.New("only the author can delete this review"))
		return
	}

	if err := app.store.WebsiteReviews.Delete(r.Context(), review.ID); err != nil {
		switch {
		case errors.Is(err, websitereviews.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type VisibilityPayload struct {
	IsVisible *bool `json:"is_visible" validate:"required"`
}

// setWebsiteReviewVisibilityHandler godoc
//
//	@Summary		Show or hide a website review
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int					true	"Website review ID"
//	@Param			payload		body		VisibilityPayload	true	"Visibility"
//	@Success		200			{object}	websitereviews.WebsiteReview
//	@Failure		404			{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/website-reviews/{reviewID} [patch]
func (app *application) setWebsiteReviewVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	review, ok := app.websiteReviewFromPath(w, r)
	if !ok {
		return
	}

	var payload VisibilityPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.WebsiteReviews.SetVisibility(r.Context(), review.ID, *payload.IsVisible); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	review.IsVisible = *payload.IsVisible

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}
