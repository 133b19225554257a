package moderation

import (
	"context"
	"errors"
	"strings"

	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/reports"
	"wandercritic/internal/domain/reviews"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/serrors"
)

// FileReport validates a report against its content type and stores it.
func (s *Service) FileReport(ctx context.Context, in ReportInput) (*reports.Report, error) {
	if !in.ReportType.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid report type %q", in.ReportType)
	}
	if !in.ContentType.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid content type %q", in.ContentType)
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "description is required")
	}
	in.URL = strings.TrimSpace(in.URL)

	switch in.ContentType {
	case reports.ContentPlace:
		if in.PlaceID == nil {
			return nil, serrors.With(serrors.ErrBadRequest, "a place report needs a place")
		}
		in.ReviewID = nil
		if _, err := s.store.Places.GetByID(ctx, *in.PlaceID); err != nil {
			if errors.Is(err, places.ErrNotFound) {
				return nil, serrors.Wrap(serrors.ErrNotFound, err, "place %d", *in.PlaceID)
			}
			return nil, err
		}
	case reports.ContentReview:
		if in.ReviewID == nil {
			return nil, serrors.With(serrors.ErrBadRequest, "a review report needs a review")
		}
		rv, err := s.store.Reviews.GetByID(ctx, *in.ReviewID)
		if err != nil {
			if errors.Is(err, reviews.ErrNotFound) {
				return nil, serrors.Wrap(serrors.ErrNotFound, err, "review %d", *in.ReviewID)
			}
			return nil, err
		}
		if in.PlaceID != nil && *in.PlaceID != rv.PlaceID {
			return nil, serrors.With(serrors.ErrNotFound, "review %d does not belong to place %d", rv.ID, *in.PlaceID)
		}
		placeID := rv.PlaceID
		in.PlaceID = &placeID
	case reports.ContentBug:
		if in.URL == "" {
			return nil, serrors.With(serrors.ErrBadRequest, "a bug report needs the page url")
		}
		in.PlaceID, in.ReviewID = nil, nil
	}

	rp, err := s.store.Reports.Create(ctx, reports.CreateInput{
		ReporterID:  in.ReporterID,
		PlaceID:     in.PlaceID,
		ReviewID:    in.ReviewID,
		ReportType:  in.ReportType,
		ContentType: in.ContentType,
		Description: in.Description,
		URL:         in.URL,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("report filed", "report_id", rp.ID, "content_type", rp.ContentType, "reporter_id", in.ReporterID)
	return rp, nil
}

// ResolveReport closes a pending report as resolved by adminID.
func (s *Service) ResolveReport(ctx context.Context, id, adminID int64) (*reports.Report, error) {
	return s.closeReport(ctx, id, adminID, reports.StatusResolved)
}

// DismissReport closes a pending report as dismissed by adminID.
func (s *Service) DismissReport(ctx context.Context, id, adminID int64) (*reports.Report, error) {
	return s.closeReport(ctx, id, adminID, reports.StatusDismissed)
}

// closeReport only acts on pending reports; closing a closed report is an
// invalid transition and leaves the original resolution stamps intact.
func (s *Service) closeReport(ctx context.Context, id, adminID int64, to reports.Status) (*reports.Report, error) {
	var rp *reports.Report

	err := s.store.WithTx(ctx, func(tx *storage.Tx) error {
		var err error
		rp, err = tx.Reports.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, reports.ErrNotFound) {
				return serrors.Wrap(serrors.ErrNotFound, err, "report %d", id)
			}
			return err
		}
		if rp.Status != reports.StatusPending {
			return serrors.With(serrors.ErrConflict, "invalid transition: report %d is already %s", id, rp.Status)
		}

		at := s.now().UTC()
		if err := tx.Reports.Close(ctx, id, to, adminID, at); err != nil {
			return err
		}

		rp.Status = to
		rp.ResolvedAt.Time, rp.ResolvedAt.Valid = at, true
		rp.ResolvedBy.Int64, rp.ResolvedBy.Valid = adminID, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "resolve"
	if to == reports.StatusDismissed {
		action = "dismiss"
	}
	s.metrics.ModerationActions.WithLabelValues("report", action).Inc()
	s.logger.Infow("report closed", "report_id", id, "status", to, "by", adminID)

	return rp, nil
}
