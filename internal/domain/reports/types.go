package reports

import (
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("report not found")
	QueryTimeoutDuration = time.Second * 5
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

type Type string

const (
	TypeInappropriate  Type = "inappropriate"
	TypeSpam           Type = "spam"
	TypeMisinformation Type = "misinformation"
	TypeOther          Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInappropriate, TypeSpam, TypeMisinformation, TypeOther:
		return true
	}
	return false
}

type ContentType string

const (
	ContentPlace  ContentType = "place"
	ContentReview ContentType = "review"
	ContentBug    ContentType = "bug"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentPlace, ContentReview, ContentBug:
		return true
	}
	return false
}

const UnknownTarget = "Unknown"

type Report struct {
	ID          int64         `json:"id"`
	ReporterID  sql.NullInt64 `json:"reporter_id" swaggertype:"integer"`
	PlaceID     sql.NullInt64 `json:"place_id" swaggertype:"integer"`
	ReviewID    sql.NullInt64 `json:"review_id" swaggertype:"integer"`
	ReportType  Type          `json:"report_type"`
	ContentType ContentType   `json:"content_type"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Status      Status        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ResolvedAt  sql.NullTime  `json:"resolved_at" swaggertype:"string"`
	ResolvedBy  sql.NullInt64 `json:"resolved_by" swaggertype:"integer"`

	// Joined fields
	PlaceName        sql.NullString `json:"-"`
	PlaceSlug        sql.NullString `json:"place_slug" swaggertype:"string"`
	ReporterUsername sql.NullString `json:"reporter_username" swaggertype:"string"`
}

// Target is the human readable subject of the report: the place name when
// the report has a place, the reported URL for bugs, otherwise "Unknown".
func (r *Report) Target() string {
	switch {
	case r.PlaceID.Valid && r.PlaceName.Valid:
		return r.PlaceName.String
	case r.ContentType == ContentBug:
		return r.URL
	default:
		return UnknownTarget
	}
}

type CreateInput struct {
	ReporterID  int64
	PlaceID     *int64
	ReviewID    *int64
	ReportType  Type
	ContentType ContentType
	Description string
	URL         string
}
