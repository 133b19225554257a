package moderation

import (
	"context"
	"errors"
	"strings"

	"wandercritic/internal/domain/applications"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/domain/users"
	"wandercritic/internal/serrors"
)

// SubmitApplication files a travel agent application. Agents, and users who
// already have a pending application, are turned away.
func (s *Service) SubmitApplication(ctx context.Context, userID int64, in ApplicationInput) (*applications.Application, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Phone = strings.TrimSpace(in.Phone)
	switch {
	case in.FullName == "":
		return nil, serrors.With(serrors.ErrBadRequest, "full name is required")
	case in.Experience == "":
		return nil, serrors.With(serrors.ErrBadRequest, "experience is required")
	case in.Phone == "":
		return nil, serrors.With(serrors.ErrBadRequest, "phone is required")
	}

	var app *applications.Application
	err := s.store.WithTx(ctx, func(tx *storage.Tx) error {
		u, err := tx.Users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return serrors.Wrap(serrors.ErrNotFound, err, "user %d", userID)
			}
			return err
		}
		if u.IsTravelAgent {
			return serrors.With(serrors.ErrConflict, "you are already a travel agent")
		}

		if _, err := tx.Applications.GetPendingByUser(ctx, userID); err == nil {
			return serrors.With(serrors.ErrConflict, "you already have a pending application")
		} else if !errors.Is(err, applications.ErrNotFound) {
			return err
		}

		app, err = tx.Applications.Create(ctx, applications.CreateInput{
			UserID:      userID,
			FullName:    in.FullName,
			CompanyName: strings.TrimSpace(in.CompanyName),
			Experience:  in.Experience,
			Website:     strings.TrimSpace(in.Website),
			Phone:       in.Phone,
		})
		if errors.Is(err, applications.ErrPendingExists) {
			return serrors.Wrap(serrors.ErrConflict, err, "you already have a pending application")
		}
		if err != nil {
			return err
		}
		app.Username, app.Email = u.Username, u.Email
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("travel agent application submitted", "application_id", app.ID, "user_id", userID)
	return app, nil
}

// ApproveApplication marks a pending application approved and grants the
// applicant travel agent status. Both writes commit together or not at all.
func (s *Service) ApproveApplication(ctx context.Context, id int64) (*applications.Application, error) {
	return s.decideApplication(ctx, id, applications.StatusApproved, func(ctx context.Context, tx *storage.Tx, app *applications.Application) error {
		if err := tx.Users.SetTravelAgent(ctx, app.UserID, true); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return serrors.Wrap(serrors.ErrInternal, err, "applicant %d of application %d vanished", app.UserID, id)
			}
			return err
		}
		return nil
	})
}

// RejectApplication marks a pending application rejected. The applicant's
// agent flag is left alone.
func (s *Service) RejectApplication(ctx context.Context, id int64) (*applications.Application, error) {
	return s.decideApplication(ctx, id, applications.StatusRejected, nil)
}

func (s *Service) decideApplication(
	ctx context.Context,
	id int64,
	to applications.Status,
	also func(context.Context, *storage.Tx, *applications.Application) error,
) (*applications.Application, error) {
	var app *applications.Application

	err := s.store.WithTx(ctx, func(tx *storage.Tx) error {
		var err error
		app, err = tx.Applications.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, applications.ErrNotFound) {
				return serrors.Wrap(serrors.ErrNotFound, err, "application %d", id)
			}
			return err
		}
		if app.Status != applications.StatusPending {
			return serrors.With(serrors.ErrConflict, "invalid transition: application %d is already %s", id, app.Status)
		}

		if err := tx.Applications.SetStatus(ctx, id, to); err != nil {
			return err
		}
		app.Status = to

		if also != nil {
			return also(ctx, tx, app)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "approve"
	if to == applications.StatusRejected {
		action = "reject"
	}
	s.metrics.ModerationActions.WithLabelValues("application", action).Inc()
	s.logger.Infow("travel agent application decided", "application_id", id, "user_id", app.UserID, "status", to)

	return app, nil
}
