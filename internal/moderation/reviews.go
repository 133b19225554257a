package moderation

import (
	"context"
	"errors"
	"strings"

	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/reviews"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/serrors"
)

// SubmitReview creates the user's review of a place, or overwrites the one
// they already wrote, and refreshes the place rating in the same transaction.
func (s *Service) SubmitReview(ctx context.Context, in ReviewInput) (*ReviewResult, error) {
	if !reviews.ValidRating(in.Rating) {
		return nil, serrors.With(serrors.ErrBadRequest, "rating must be between %d and %d", reviews.MinRating, reviews.MaxRating)
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "comment is required")
	}

	res := &ReviewResult{
		Review: &reviews.Review{
			PlaceID: in.PlaceID,
			UserID:  in.UserID,
			Rating:  in.Rating,
			Comment: comment,
		},
	}

	err := s.store.WithTx(ctx, func(tx *storage.Tx) error {
		if err := tx.Places.LockByID(ctx, in.PlaceID); err != nil {
			if errors.Is(err, places.ErrNotFound) {
				return serrors.Wrap(serrors.ErrNotFound, err, "place %d", in.PlaceID)
			}
			return err
		}

		created, err := tx.Reviews.Upsert(ctx, res.Review)
		if err != nil {
			return err
		}
		res.Created = created

		res.Rating, err = s.recomputeLocked(ctx, tx, in.PlaceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	outcome := "updated"
	if res.Created {
		outcome = "created"
	}
	s.metrics.ReviewsSubmitted.WithLabelValues(outcome).Inc()
	s.logger.Infow("review submitted", "review_id", res.Review.ID, "place_id", in.PlaceID, "user_id", in.UserID, "outcome", outcome)

	return res, nil
}

// DeleteReview removes a review written by actor (or any review, for a
// superuser) and refreshes the place rating.
func (s *Service) DeleteReview(ctx context.Context, reviewID int64, actor Actor) (*Rating, error) {
	var rating *Rating

	err := s.store.WithTx(ctx, func(tx *storage.Tx) error {
		rv, err := tx.Reviews.GetByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, reviews.ErrNotFound) {
				return serrors.Wrap(serrors.ErrNotFound, err, "review %d", reviewID)
			}
			return err
		}
		if rv.UserID != actor.UserID && !actor.IsSuperuser {
			return serrors.With(serrors.ErrForbidden, "only the author can delete this review")
		}

		if err := tx.Places.LockByID(ctx, rv.PlaceID); err != nil {
			if errors.Is(err, places.ErrNotFound) {
				return serrors.Wrap(serrors.ErrInternal, err, "place %d vanished before rating recompute", rv.PlaceID)
			}
			return err
		}

		if err := tx.Reviews.Delete(ctx, reviewID); err != nil {
			if errors.Is(err, reviews.ErrNotFound) {
				return serrors.Wrap(serrors.ErrNotFound, err, "review %d", reviewID)
			}
			return err
		}

		rating, err = s.recomputeLocked(ctx, tx, rv.PlaceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("review deleted", "review_id", reviewID, "place_id", rating.PlaceID, "by", actor.UserID)
	return rating, nil
}
