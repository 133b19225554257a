package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 12
	MaxLimit     = 30
)

// Pagination holds the requested page window and, once the total is known,
// the metadata returned to clients.
//
//	/places?page=2&limit=20 → Pagination{Limit: 20, Page: 2, Offset: 20}
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination reads ?limit= and ?page= with DefaultLimit as the fallback.
func ParsePagination(q url.Values) Pagination {
	return ParsePaginationWithDefault(q, DefaultLimit)
}

// ParsePaginationWithDefault is ParsePagination with a caller-chosen default
// page size. Limits above MaxLimit are clamped.
func ParsePaginationWithDefault(q url.Values, def int) Pagination {
	p := Pagination{Limit: def, Page: 1}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = min(limit, MaxLimit)
		}
	}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// Fixed returns a window of exactly size items per page, ignoring ?limit=.
func Fixed(q url.Values, size int) Pagination {
	p := ParsePaginationWithDefault(url.Values{"page": {q.Get("page")}}, size)
	return p
}

// ComputeMeta fills the totals after the count query has run.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Page*p.Limit < total
}
