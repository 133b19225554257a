package places

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wandercritic/internal/domain/taxonomy"
)

var (
	ErrNotFound          = errors.New("place not found")
	ErrDuplicateSlug     = errors.New("a place with that slug already exists")
	ErrImageNotFound     = errors.New("place image not found")
	QueryTimeoutDuration = time.Second * 5
)

const (
	SortRating = "rating"
	SortNewest = "newest"
)

type Place struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	Slug             string              `json:"slug"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"short_description"`
	Location         string              `json:"location"`
	ImageURL         string              `json:"image_url"`
	History          string              `json:"history"`
	Highlights       []string            `json:"highlights"`
	BestTimeToVisit  string              `json:"best_time_to_visit"`
	GettingThere     string              `json:"getting_there"`
	Tips             []string            `json:"tips"`
	Budget           decimal.NullDecimal `json:"budget" swaggertype:"string"`
	AverageRating    decimal.Decimal     `json:"average_rating" swaggertype:"string"`
	TotalRatings     int                 `json:"total_ratings"`
	CreatedBy        int64               `json:"created_by"`
	CreatorUsername  string              `json:"creator_username"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`

	Categories []taxonomy.Category `json:"categories,omitempty"`
	Tags       []taxonomy.Tag      `json:"tags,omitempty"`
	Images     []PlaceImage        `json:"images,omitempty"`
}

type PlaceImage struct {
	ID        int64     `json:"id"`
	PlaceID   int64     `json:"place_id"`
	ImageURL  string    `json:"image_url"`
	PublicID  string    `json:"-"`
	Caption   string    `json:"caption"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// Update carries the editable fields; nil means unchanged.
type Update struct {
	Name             *string
	Description      *string
	ShortDescription *string
	Location         *string
	ImageURL         *string
	History          *string
	Highlights       []string
	BestTimeToVisit  *string
	GettingThere     *string
	Tips             []string
	Budget           *decimal.NullDecimal
}

type Filter struct {
	Search      string
	Category    string
	Tag         string
	BudgetRange string
	Sort        string
	Limit       int
	Offset      int
}

// BudgetRange bounds are inclusive; Max is zero for the open-ended range.
type BudgetRange struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max,omitempty"`
}

var BudgetRanges = []BudgetRange{
	{Key: "0-10", Label: "£0 - £10", Min: 0, Max: 10},
	{Key: "11-20", Label: "£11 - £20", Min: 11, Max: 20},
	{Key: "21-50", Label: "£21 - £50", Min: 21, Max: 50},
	{Key: "51-100", Label: "£51 - £100", Min: 51, Max: 100},
	{Key: "101-200", Label: "£101 - £200", Min: 101, Max: 200},
	{Key: "201+", Label: "£201+", Min: 201},
}

func LookupBudgetRange(key string) (BudgetRange, bool) {
	for _, br := range BudgetRanges {
		if br.Key == key {
			return br, true
		}
	}
	return BudgetRange{}, false
}

// SplitLines turns a newline separated text column into its non-blank lines.
func SplitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func JoinLines(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
