package moderation

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/serrors"
)

// Average is the arithmetic mean of the ratings rounded half-up to two
// decimal places, or zero when there are no ratings.
func Average(sum int64, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(int64(count)), 2)
}

// RecomputeRating recalculates a place's average and count from its reviews
// in its own transaction. Review mutations recompute inline instead; this is
// the standalone entry point for repairing a place's aggregate.
func (s *Service) RecomputeRating(ctx context.Context, placeID int64) (*Rating, error) {
	var rating *Rating
	err := s.store.WithTx(ctx, func(tx *storage.Tx) error {
		if err := tx.Places.LockByID(ctx, placeID); err != nil {
			if errors.Is(err, places.ErrNotFound) {
				return serrors.Wrap(serrors.ErrInternal, err, "place %d vanished before rating recompute", placeID)
			}
			return err
		}

		var err error
		rating, err = s.recomputeLocked(ctx, tx, placeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// recomputeLocked expects the caller to hold the place row lock in tx.
func (s *Service) recomputeLocked(ctx context.Context, tx *storage.Tx, placeID int64) (*Rating, error) {
	count, sum, err := tx.Reviews.Stats(ctx, placeID)
	if err != nil {
		return nil, err
	}

	avg := Average(sum, count)
	if err := tx.Places.SetRating(ctx, placeID, avg, count); err != nil {
		if errors.Is(err, places.ErrNotFound) {
			return nil, serrors.Wrap(serrors.ErrInternal, err, "place %d vanished during rating recompute", placeID)
		}
		return nil, err
	}

	s.metrics.RatingRecomputes.Inc()
	s.logger.Debugw("rating recomputed", "place_id", placeID, "average", avg.StringFixed(2), "total", count)

	return &Rating{PlaceID: placeID, Average: avg, Total: count}, nil
}
