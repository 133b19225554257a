package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wandercritic/internal/domain/reviews"
	"wandercritic/internal/moderation"
)

type SubmitReviewPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=2000"`
}

// submitReviewHandler godoc
//
//	@Summary		Review a place
//	@Description	Creates the caller's review of the place, or replaces the rating and comment of the review they already wrote. The place rating is recomputed in the same transaction.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string				true	"Place slug"
//	@Param			payload	body		SubmitReviewPayload	true	"Rating 1-5 and comment"
//	@Success		201		{object}	moderation.ReviewResult	"Review created"
//	@Success		200		{object}	moderation.ReviewResult	"Review updated"
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug}/reviews [post]
func (app *application) submitReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	var payload SubmitReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	res, err := app.moderation.SubmitReview(r.Context(), moderation.ReviewInput{
		PlaceID: place.ID,
		UserID:  user.ID,
		Rating:  payload.Rating,
		Comment: payload.Comment,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}

	if err := app.jsonResponse(w, status, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Delete a review
//	@Description	The author or an admin may delete a review. Returns the place's new rating.
//	@Tags			reviews
//	@Produce		json
//	@Param			slug		path		string	true	"Place slug"
//	@Param			reviewID	path		int		true	"Review ID"
//	@Success		200			{object}	moderation.Rating
//	@Failure		403			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug}/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	rv, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}
	if rv.PlaceID != place.ID {
		app.notFoundResponse(w, r, reviews.ErrNotFound)
		return
	}

	rating, err := app.moderation.DeleteReview(r.Context(), reviewID, actorFor(user))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rating); err != nil {
		app.internalServerError(w, r, err)
	}
}
