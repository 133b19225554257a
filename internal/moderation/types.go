package moderation

import (
	"github.com/shopspring/decimal"

	"wandercritic/internal/domain/reports"
	"wandercritic/internal/domain/reviews"
)

// Rating is a place's aggregate after a recompute.
type Rating struct {
	PlaceID int64           `json:"place_id"`
	Average decimal.Decimal `json:"average_rating" swaggertype:"string"`
	Total   int             `json:"total_ratings"`
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID      int64
	IsSuperuser bool
}

type ReviewInput struct {
	PlaceID int64
	UserID  int64
	Rating  int
	Comment string
}

type ReviewResult struct {
	Review  *reviews.Review `json:"review"`
	Created bool            `json:"created"`
	Rating  *Rating         `json:"rating"`
}

type ApplicationInput struct {
	FullName    string
	CompanyName string
	Experience  string
	Website     string
	Phone       string
}

type ReportInput struct {
	ReporterID  int64
	PlaceID     *int64
	ReviewID    *int64
	ReportType  reports.Type
	ContentType reports.ContentType
	Description string
	URL         string
}
