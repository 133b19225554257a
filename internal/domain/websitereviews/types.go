package websitereviews

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("website review not found")
	QueryTimeoutDuration = time.Second * 5
)

// WebsiteReview is feedback about the site itself, one per user.
type WebsiteReview struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	IsVisible bool      `json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`

	Username string `json:"username"`
}
