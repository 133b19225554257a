package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wandercritic/internal/domain/places"
)

const maxImagesPerUpload = 10

// uploadPlaceImageHandler godoc
//
//	@Summary		Upload place images
//	@Description	Uploads up to 10 images for a place. With is_primary=true the first uploaded image becomes the primary one.
//	@Tags			places
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			slug		path		string	true	"Place slug"
//	@Param			images		formData	file	true	"Image files"
//	@Param			caption		formData	string	false	"Caption for every uploaded image"
//	@Param			is_primary	formData	bool	false	"Make the first image primary"
//	@Success		201			{array}		places.PlaceImage
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		403			{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug}/images [post]
func (app *application) uploadPlaceImageHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	if !canEditPlace(user, place) {
		app.forbiddenResponse(w, r, errors.New("you can only add images to places you created"))
		return
	}
	if app.uploader == nil {
		app.internalServerError(w, r, ErrUploadsDisabled)
		return
	}

	if err := r.ParseMultipartForm(maxImagesPerUpload * maxImageSize); err != nil {
		app.badRequestResponse(w, r, errors.New("unable to parse form data"))
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		app.badRequestResponse(w, r, errors.New("at least one image is required"))
		return
	}
	if len(files) > maxImagesPerUpload {
		app.badRequestResponse(w, r, errors.New("too many images in one upload"))
		return
	}

	caption := r.FormValue("caption")
	primary, _ := strconv.ParseBool(r.FormValue("is_primary"))

	ctx := r.Context()
	uploaded := make([]places.PlaceImage, 0, len(files))

	for i, fh := range files {
		file, err := openImage(fh)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		secureURL, publicID, err := app.uploader.Upload(ctx, file, placeImagesFolder)
		file.Close()
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}

		img := places.PlaceImage{
			PlaceID:   place.ID,
			ImageURL:  secureURL,
			PublicID:  publicID,
			Caption:   caption,
			IsPrimary: primary && i == 0,
		}
		if err := app.store.Places.AddImage(ctx, &img); err != nil {
			// don't leave an orphan in storage
			app.destroyImages(ctx, []places.PlaceImage{img})
			app.internalServerError(w, r, err)
			return
		}
		uploaded = append(uploaded, img)
	}

	if err := app.jsonResponse(w, http.StatusCreated, uploaded); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deletePlaceImageHandler godoc
//
//	@Summary		Delete a place image
//	@Tags			places
//	@Param			slug	path	string	true	"Place slug"
//	@Param			imageID	path	int		true	"Image ID"
//	@Success		204
//	@Failure		403	{object}	ErrorBadRequestResponse
//	@Failure		404	{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/places/{slug}/images/{imageID} [delete]
func (app *application) deletePlaceImageHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	place := getPlaceFromContext(r)

	if !canEditPlace(user, place) {
		app.forbiddenResponse(w, r, errors.New("you can only remove images from places you created"))
		return
	}

	imageID, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid image ID"))
		return
	}

	ctx := r.Context()

	img, err := app.store.Places.GetImage(ctx, place.ID, imageID)
	if err != nil {
		switch {
		case errors.Is(err, places.ErrImageNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.store.Places.DeleteImage(ctx, place.ID, imageID); err != nil {
		switch {
		case errors.Is(err, places.ErrImageNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.destroyImages(ctx, []places.PlaceImage{*img})

	w.WriteHeader(http.StatusNoContent)
}

// destroyImages removes stored files; failures are logged only since the
// database rows are already gone.
func (app *application) destroyImages(ctx context.Context, images []places.PlaceImage) {
	if app.uploader == nil {
		return
	}
	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := app.uploader.Destroy(ctx, img.PublicID); err != nil {
			app.logger.Warnw("could not delete image from storage", "image_id", img.ID, "public_id", img.PublicID, "error", err)
		}
	}
}
