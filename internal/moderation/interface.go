package moderation

import (
	"context"

	"wandercritic/internal/domain/applications"
	"wandercritic/internal/domain/reports"
	"wandercritic/internal/domain/websitereviews"
)

//go:generate mockgen -package mockmoderation -source=interface.go -destination=mock/mockmoderation.go *
type Moderator interface {
	RecomputeRating(ctx context.Context, placeID int64) (*Rating, error)
	SubmitReview(ctx context.Context, in ReviewInput) (*ReviewResult, error)
	DeleteReview(ctx context.Context, reviewID int64, actor Actor) (*Rating, error)

	SubmitApplication(ctx context.Context, userID int64, in ApplicationInput) (*applications.Application, error)
	ApproveApplication(ctx context.Context, id int64) (*applications.Application, error)
	RejectApplication(ctx context.Context, id int64) (*applications.Application, error)

	FileReport(ctx context.Context, in ReportInput) (*reports.Report, error)
	ResolveReport(ctx context.Context, id, adminID int64) (*reports.Report, error)
	DismissReport(ctx context.Context, id, adminID int64) (*reports.Report, error)

	SubmitWebsiteReview(ctx context.Context, userID int64, rating int, content string) (*websitereviews.WebsiteReview, error)
}
