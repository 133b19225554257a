package main

import (
	"net/http"

	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/users"
	"wandercritic/internal/moderation"
)

type ctxKey string

const (
	userCtx  ctxKey = "user"
	placeCtx ctxKey = "place"
)

func getUserFromContext(r *http.Request) *users.User {
	if user, ok := r.Context().Value(userCtx).(*users.User); ok {
		return user
	}
	return nil
}

func getPlaceFromContext(r *http.Request) *places.Place {
	if place, ok := r.Context().Value(placeCtx).(*places.Place); ok {
		return place
	}
	return nil
}

func actorFor(user *users.User) moderation.Actor {
	return moderation.Actor{UserID: user.ID, IsSuperuser: user.IsSuperuser}
}

// canEditPlace reports whether user may change place: its creator or a superuser.
func canEditPlace(user *users.User, place *places.Place) bool {
	return user.IsSuperuser || place.CreatedBy == user.ID
}
