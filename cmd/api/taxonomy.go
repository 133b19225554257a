package main

import (
	"net/http"

	"wandercritic/internal/domain/places"
)

// listCategoriesHandler godoc
//
//	@Summary		Place categories
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{array}	taxonomy.Category
//	@Router			/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Taxonomy.ListCategories(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listTagsHandler godoc
//
//	@Summary		Place tags
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{array}	taxonomy.Tag
//	@Router			/tags [get]
func (app *application) listTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.store.Taxonomy.ListTags(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tags); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listBudgetRangesHandler godoc
//
//	@Summary		Budget ranges used by the explore filter
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{array}	places.BudgetRange
//	@Router			/budget-ranges [get]
func (app *application) listBudgetRangesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, places.BudgetRanges); err != nil {
		app.internalServerError(w, r, err)
	}
}
