package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/reviews"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/domain/taxonomy"
	"wandercritic/internal/domain/users"
	"wandercritic/internal/params"
	"wandercritic/internal/slug"
)

const maxSlugAttempts = 5

func (app *application) placeContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		place, err := app.store.Places.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			switch {
			case errors.Is(err, places.ErrNotFound):
				app.notFoundResponse(w, r, err)
			default:
				app.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), placeCtx, place)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type ExploreResponse struct {
	Places     []places.Place      `json:"places"`
	Pagination params.Pagination   `json:"pagination"`
	Categories []taxonomy.Category `json:"categories"`
	Tags       []taxonomy.Tag      `json:"tags"`
}

// explorePlacesHandler godoc
//
//	@Summary		Explore places
//	@Description	Lists places with optional search, category, tag and budget filters.
//	@Tags			places
//	@Produce		json
//	@Param			search			query		string	false	"Matches name, description or location"
//	@Param			category		query		string	false	"Category name"
//	@Param			tag				query		string	false	"Tag name"
//	@Param			budget_range	query		string	false	"One of 0-10, 11-20, 21-50, 51-100, 101-200, 201+"
//	@Param			sort			query		string	false	"rating (default) or newest"
//	@Param			page			query		int		false	"Page number"	default(1)
//	@Param			limit			query		int		false	"Page size"		default(12)
//	@Success		200				{object}	ExploreResponse
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Router			/places [get]
func (app *application) explorePlacesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := params.ParsePagination(q)

	filter := places.Filter{
		Search:      strings.TrimSpace(q.Get("search")),
		Category:    strings.TrimSpace(q.Get("category")),
		Tag:         strings.TrimSpace(q.Get("tag")),
		BudgetRange: q.Get("budget_range"),
		Sort:        q.Get("sort"),
		Limit:       pg.Limit,
		Offset:      pg.Offset,
	}

	switch filter.Sort {
	case "":
		filter.Sort = places.SortRating
	case places.SortRating, places.SortNewest:
	default:
		app.badRequestResponse(w, r, errors.New("sort must be rating or newest"))
		return
	}

	if filter.BudgetRange != "" {
		if _, ok := places.LookupBudgetRange(filter.BudgetRange); !ok {
			app.badRequestResponse(w, r, errors.New("unknown budget_range"))
			return
		}
	}

	ctx := r.Context()

	list, total, err := app.store.Places.List(ctx, filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pg.ComputeMeta(total)

	categories, err := app.store.Taxonomy.ListCategories(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	tags, err := app.store.Taxonomy.ListTags(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := ExploreResponse{
		Places:     list,
		Pagination: pg,
		Categories: categories,
		Tags:       tags,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type PlaceDetailResponse struct {
	Place      *places.Place   `json:"place"`
	Reviews    []reviews.Review `json:"reviews"`
	UserReview *reviews.Review `json:"user_review,omitempty"`
}

// getPlaceHandler godoc
//
//	@Summary		Place detail
//	@Description	Returns the place with its images, categories, tags and reviews. When a token is sent the caller's own review is included.
//	@Tags			places
//	@Produce		json
//	@Param			slug	path		string	true	"Place slug"
//	@Success		200		{object}	PlaceDetailResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Router			/places/{slug} [get]
func (app *application) getPlaceHandler(w http.ResponseWriter, r *http.Request) {
	place := getPlaceFromContext(r)
	ctx := r.Context()

	var err error
	if place.Images, err = app.store.Places.ListImages(ctx, place.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if place.Categories, err = app.store.Taxonomy.CategoriesForPlace(ctx, place.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if place.Tags, err = app.store.Taxonomy.TagsForPlace(ctx, place.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	list, err := app.store.Reviews.ListByPlace(ctx, place.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := PlaceDetailResponse{Place: place, Reviews: list}

	if user := getUserFromContext(r); user != nil {
		own, err := app.store.Reviews.GetByPlaceAndUser(ctx, place.ID, user.ID)
		switch {
		case err == nil:
			resp.UserReview = own
		case !errors.Is(err, reviews.ErrNotFound):
			app.internalServerError(w, r, err)
			return
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreatePlacePayload struct {
	Name             string           `json:"name" validate:"required,max=200"`
	Description      string           `json:"description" validate:"required"`
	ShortDescription string           `json:"short_description" validate:"required,max=300"`
	Location         string           `json:"location" validate:"required,max=200"`
	ImageURL         string           `json:"image_url" validate:"omitempty,url,max=500"`
	History          string           `json:"history"`
	Highlights       []string         `json:"highlights" validate:"omitempty,dive,max=300"`
	BestTimeToVisit  string           `json:"best_time_to_visit" validate:"max=200"`
	GettingThere     string           `json:"getting_there"`
	Tips             []string         `json:"tips" validate:"omitempty,dive,max=300"`
	Budget           *decimal.Decimal `json:"budget" swaggertype:"string"`
	Categories       []string         `json:"categories"`
	Tags             []string         `json:"tags"`
}

func validBudget(b *decimal.Decimal) bool {
	return b == nil || !b.IsNegative()
}

// uniquePlaceSlug derives a slug from name and, if it is taken, appends a
// hashid of the creator and attempt number until a free one is found.
func (app *application) uniquePlaceSlug(ctx context.Context, name string, creatorID int64) (string, error) {
	base := slug.Make(name)
	candidate := base
	for attempt := int64(1); attempt <= maxSlugAttempts; attempt++ {
		if candidate != "" {
			exists, err := app.store.Places.SlugExists(ctx, candidate)
			if err != nil {
				return "", err
			}
			if !exists {
				return candidate, nil
			}
		}

		var err error
		candidate, err = app.slugs.Suffix(base, creatorID, attempt)
		if err != nil {
			return "", err
		}
	}
	return "", places.ErrDuplicateSlug
}

// createPlaceHandler godoc
//
//	@Summary		Create a place
//	@Description	Travel agents add a new destination. The slug is derived from the name.
//	@Tags			places
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreatePlacePayload	true	"Place"
//	@Success		201		{object}	places.Place
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	ErrorBadRequestResponse
//	@Failure		409		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places [post]
func (app *application) createPlaceHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreatePlacePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !validBudget(payload.Budget) {
		app.badRequestResponse(w, r, errors.New("budget cannot be negative"))
		return
	}

	ctx := r.Context()

	placeSlug, err := app.uniquePlaceSlug(ctx, payload.Name, user.ID)
	if err != nil {
		if errors.Is(err, places.ErrDuplicateSlug) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	place := &places.Place{
		Name:             payload.Name,
		Slug:             placeSlug,
		Description:      payload.Description,
		ShortDescription: payload.ShortDescription,
		Location:         payload.Location,
		ImageURL:         payload.ImageURL,
		History:          payload.History,
		Highlights:       payload.Highlights,
		BestTimeToVisit:  payload.BestTimeToVisit,
		GettingThere:     payload.GettingThere,
		Tips:             payload.Tips,
		CreatedBy:        user.ID,
		CreatorUsername:  user.Username,
	}
	if payload.Budget != nil {
		place.Budget = decimal.NewNullDecimal(*payload.Budget)
	}

	err = app.store.WithTx(ctx, func(tx *storage.Tx) error {
		var err error
		if err = tx.Places.Create(ctx, place); err != nil {
			return err
		}
		if err := tx.Taxonomy.SetPlaceCategories(ctx, place.ID, payload.Categories); err != nil {
			return err
		}
		if err := tx.Taxonomy.SetPlaceTags(ctx, place.ID, payload.Tags); err != nil {
			return err
		}
		if place.Categories, err = tx.Taxonomy.CategoriesForPlace(ctx, place.ID); err != nil {
			return err
		}
		place.Tags, err = tx.Taxonomy.TagsForPlace(ctx, place.ID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, places.ErrDuplicateSlug):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.logger.Infow("place created", "place_id", place.ID, "slug", place.Slug, "user_id", user.ID)

	if err := app.jsonResponse(w, http.StatusCreated, place); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdatePlacePayload struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description" validate:"omitempty,min=1"`
	ShortDescription *string          `json:"short_description" validate:"omitempty,min=1,max=300"`
	Location         *string          `json:"location" validate:"omitempty,min=1,max=200"`
	ImageURL         *string          `json:"image_url" validate:"omitempty,url,max=500"`
	History          *string          `json:"history"`
	Highlights       []string         `json:"highlights" validate:"omitempty,dive,max=300"`
	BestTimeToVisit  *string          `json:"best_time_to_visit" validate:"omitempty,max=200"`
	GettingThere     *string          `json:"getting_there"`
	Tips             []string         `json:"tips" validate:"omitempty,dive,max=300"`
	Budget           *decimal.Decimal `json:"budget" swaggertype:"string"`
	ClearBudget      bool             `json:"clear_budget"`
	Categories       []string         `json:"categories"`
	Tags             []string         `json:"tags"`
}

// updatePlaceHandler godoc
//
//	@Summary		Edit a place
//	@Description	Partially updates a place. Only its creator or an admin may edit it. The slug never changes.
//	@Tags			places
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string				true	"Place slug"
//	@Param			payload	body		UpdatePlacePayload	true	"Fields to change"
//	@Success		200		{object}	places.Place
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug} [patch]
func (app *application) updatePlaceHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	if !canEditPlace(user, place) {
		app.forbiddenResponse(w, r, errors.New("you can only edit places you created"))
		return
	}

	var payload UpdatePlacePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !validBudget(payload.Budget) {
		app.badRequestResponse(w, r, errors.New("budget cannot be negative"))
		return
	}

	upd := places.Update{
		Name:             payload.Name,
		Description:      payload.Description,
		ShortDescription: payload.ShortDescription,
		Location:         payload.Location,
		ImageURL:         payload.ImageURL,
		History:          payload.History,
		Highlights:       payload.Highlights,
		BestTimeToVisit:  payload.BestTimeToVisit,
		GettingThere:     payload.GettingThere,
		Tips:             payload.Tips,
	}
	switch {
	case payload.ClearBudget:
		upd.Budget = &decimal.NullDecimal{}
	case payload.Budget != nil:
		nd := decimal.NewNullDecimal(*payload.Budget)
		upd.Budget = &nd
	}

	ctx := r.Context()

	var updated *places.Place
	err := app.store.WithTx(ctx, func(tx *storage.Tx) error {
		var err error
		if updated, err = tx.Places.Update(ctx, place.ID, upd); err != nil {
			return err
		}
		if payload.Categories != nil {
			if err := tx.Taxonomy.SetPlaceCategories(ctx, place.ID, payload.Categories); err != nil {
				return err
			}
		}
		if payload.Tags != nil {
			if err := tx.Taxonomy.SetPlaceTags(ctx, place.ID, payload.Tags); err != nil {
				return err
			}
		}
		if updated.Categories, err = tx.Taxonomy.CategoriesForPlace(ctx, place.ID); err != nil {
			return err
		}
		updated.Tags, err = tx.Taxonomy.TagsForPlace(ctx, place.ID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, places.ErrNotFound):
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

// deletePlaceHandler godoc
//
//	@Summary		Delete a place
//	@Description	Admins may delete any place; travel agents only their own. Reviews and images go with it.
//	@Tags			places
//	@Param			slug	path	string	true	"Place slug"
//	@Success		204
//	@Failure		403	{object}	ErrorBadRequestResponse
//	@Failure		404	{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug} [delete]
func (app *application) deletePlaceHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	if !user.IsSuperuser && !(user.IsTravelAgent && place.CreatedBy == user.ID) {
		app.forbiddenResponse(w, r, errors.New("you cannot delete this place"))
		return
	}

	ctx := r.Context()

	images, err := app.store.Places.ListImages(ctx, place.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Places.Delete(ctx, place.ID); err != nil {
		switch {
		case errors.Is(err, places.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.destroyImages(ctx, images)
	app.logger.Infow("place deleted", "place_id", place.ID, "by", user.ID)

	w.WriteHeader(http.StatusNoContent)
}

type AgentProfile struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
	CompanyName       string `json:"company_name"`
	CompanyWebsite    string `json:"company_website"`
}

type AgentPlacesResponse struct {
	Agent  AgentProfile   `json:"agent"`
	Places []places.Place `json:"places"`
}

// agentPlacesHandler godoc
//
//	@Summary		A travel agent's places
//	@Tags			places
//	@Produce		json
//	@Param			userID	path		int	true	"Agent user ID"
//	@Success		200		{object}	AgentPlacesResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Router			/agents/{userID}/places [get]
func (app *application) agentPlacesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	ctx := r.Context()

	agent, err := app.store.Users.GetByID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}
	if !agent.IsTravelAgent {
		app.notFoundResponse(w, r, errors.New("travel agent not found"))
		return
	}

	list, err := app.store.Places.ListByCreator(ctx, agent.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := AgentPlacesResponse{
		Agent: AgentProfile{
			ID:                agent.ID,
			Username:          agent.Username,
			FullName:          agent.FullName(),
			Bio:               agent.Bio,
			ProfilePictureURL: agent.ProfilePictureURL.String,
			CompanyName:       agent.CompanyName,
			CompanyWebsite:    agent.CompanyWebsite,
		},
		Places: list,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
