package moderation

import (
	"context"
	"errors"
	"strings"

	"wandercritic/internal/domain/reviews"
	"wandercritic/internal/domain/users"
	"wandercritic/internal/domain/websitereviews"
	"wandercritic/internal/serrors"
)

// SubmitWebsiteReview stores the user's single review of the site, replacing
// an earlier one. The role label follows the user's current agent status.
func (s *Service) SubmitWebsiteReview(ctx context.Context, userID int64, rating int, content string) (*websitereviews.WebsiteReview, error) {
	if !reviews.ValidRating(rating) {
		return nil, serrors.With(serrors.ErrBadRequest, "rating must be between %d and %d", reviews.MinRating, reviews.MaxRating)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "content is required")
	}

	u, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, serrors.Wrap(serrors.ErrNotFound, err, "user %d", userID)
		}
		return nil, err
	}

	w := &websitereviews.WebsiteReview{
		UserID:   userID,
		Rating:   rating,
		Content:  content,
		Role:     u.Role(),
		Username: u.Username,
	}
	if err := s.store.WebsiteReviews.Upsert(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Infow("website review submitted", "website_review_id", w.ID, "user_id", userID)
	return w, nil
}
