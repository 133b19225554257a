package main

import (
	"net/http"

	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/websitereviews"
)

const (
	homeTopPlaces      = 5
	homeWebsiteReviews = 3
)

type HomeResponse struct {
	TopPlaces      []places.Place                 `json:"top_places"`
	WebsiteReviews []websitereviews.WebsiteReview `json:"website_reviews"`
}

// homeHandler godoc
//
//	@Summary		Home page content
//	@Description	The five best rated places and the three latest visible website reviews.
//	@Tags			home
//	@Produce		json
//	@Success		200	{object}	HomeResponse
//	@Router			/home [get]
func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	top, err := app.store.Places.Top(r.Context(), homeTopPlaces)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	latest, err := app.store.WebsiteReviews.ListVisible(r.Context(), homeWebsiteReviews)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, HomeResponse{TopPlaces: top, WebsiteReviews: latest}); err != nil {
		app.internalServerError(w, r, err)
	}
}
