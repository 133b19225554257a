package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/shopspring/decimal"

	"wandercritic/internal/db"
)

type Store interface {
	Create(ctx context.Context, place *Place) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	GetBySlug(ctx context.Context, slug string) (*Place, error)
	GetByID(ctx context.Context, id int64) (*Place, error)
	Update(ctx context.Context, id int64, upd Update) (*Place, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter) ([]Place, int, error)
	ListByCreator(ctx context.Context, userID int64) ([]Place, error)
	Top(ctx context.Context, n int) ([]Place, error)

	// LockByID takes a row lock on the place for the rest of the transaction.
	LockByID(ctx context.Context, id int64) error
	SetRating(ctx context.Context, id int64, average decimal.Decimal, total int) error

	AddImage(ctx context.Context, img *PlaceImage) error
	ListImages(ctx context.Context, placeID int64) ([]PlaceImage, error)
	GetImage(ctx context.Context, placeID, imageID int64) (*PlaceImage, error)
	DeleteImage(ctx context.Context, placeID, imageID int64) error
}

type Repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Store {
	return &Repository{db: db}
}

var dialect = goqu.Dialect("postgres")

const placeColumns = `p.id, p.name, p.slug, p.description, p.short_description, p.location,
	p.image_url, p.history, p.highlights, p.best_time_to_visit, p.getting_there, p.tips,
	p.budget, p.average_rating, p.total_ratings, p.created_by, u.username, p.created_at, p.updated_at`

const placeFrom = ` FROM places p JOIN users u ON u.id = p.created_by`

type scanner interface{ Scan(...any) error }

func scanPlace(row scanner) (*Place, error) {
	var (
		p          Place
		highlights string
		tips       string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.ShortDescription,
		&p.Location,
		&p.ImageURL,
		&p.History,
		&highlights,
		&p.BestTimeToVisit,
		&p.GettingThere,
		&tips,
		&p.Budget,
		&p.AverageRating,
		&p.TotalRatings,
		&p.CreatedBy,
		&p.CreatorUsername,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Highlights = SplitLines(highlights)
	p.Tips = SplitLines(tips)
	return &p, nil
}

func (r *Repository) queryPlaces(ctx context.Context, query string, args ...any) ([]Place, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (r *Repository) Create(ctx context.Context, place *Place) error {
	query := `
		INSERT INTO places (
			name, slug, description, short_description, location, image_url, history,
			highlights, best_time_to_visit, getting_there, tips, budget, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, average_rating, total_ratings, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		place.Name,
		place.Slug,
		place.Description,
		place.ShortDescription,
		place.Location,
		place.ImageURL,
		place.History,
		JoinLines(place.Highlights),
		place.BestTimeToVisit,
		place.GettingThere,
		JoinLines(place.Tips),
		place.Budget,
		place.CreatedBy,
	).Scan(&place.ID, &place.AverageRating, &place.TotalRatings, &place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "places_slug_key") {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM places WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Place, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanPlace(r.db.QueryRowContext(ctx, `SELECT `+placeColumns+placeFrom+` WHERE p.slug = $1`, slug))
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Place, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanPlace(r.db.QueryRowContext(ctx, `SELECT `+placeColumns+placeFrom+` WHERE p.id = $1`, id))
}

func (r *Repository) Update(ctx context.Context, id int64, upd Update) (*Place, error) {
	query := `
		UPDATE places SET
			name               = COALESCE($1, name),
			description        = COALESCE($2, description),
			short_description  = COALESCE($3, short_description),
			location           = COALESCE($4, location),
			image_url          = COALESCE($5, image_url),
			history            = COALESCE($6, history),
			highlights         = COALESCE($7, highlights),
			best_time_to_visit = COALESCE($8, best_time_to_visit),
			getting_there      = COALESCE($9, getting_there),
			tips               = COALESCE($10, tips),
			budget             = CASE WHEN $11::boolean THEN $12::numeric ELSE budget END,
			updated_at         = NOW()
		WHERE id = $13
	`

	var budget decimal.NullDecimal
	if upd.Budget != nil {
		budget = *upd.Budget
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		upd.Name,
		upd.Description,
		upd.ShortDescription,
		upd.Location,
		upd.ImageURL,
		upd.History,
		linesArg(upd.Highlights),
		upd.BestTimeToVisit,
		upd.GettingThere,
		linesArg(upd.Tips),
		upd.Budget != nil,
		budget,
		id,
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func linesArg(lines []string) any {
	if lines == nil {
		return nil
	}
	return JoinLines(lines)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// likeEscaper makes user text match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List runs the explore query: optional search, category, tag and budget
// filters, then the requested order and page window. It also returns the
// total number of matches.
func (r *Repository) List(ctx context.Context, f Filter) ([]Place, int, error) {
	ds := dialect.From(goqu.T("places").As("p")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("p.created_by"))))

	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("p.name").ILike(pattern),
			goqu.I("p.description").ILike(pattern),
			goqu.I("p.location").ILike(pattern),
		))
	}

	if f.Category != "" {
		ds = ds.Where(goqu.I("p.id").In(
			dialect.From(goqu.T("place_category_links").As("cl")).
				Join(goqu.T("place_categories").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("cl.category_id")))).
				Select(goqu.I("cl.place_id")).
				Where(goqu.I("c.name").Eq(f.Category)),
		))
	}

	if f.Tag != "" {
		ds = ds.Where(goqu.I("p.id").In(
			dialect.From(goqu.T("place_tag_links").As("tl")).
				Join(goqu.T("tags").As("t"), goqu.On(goqu.I("t.id").Eq(goqu.I("tl.tag_id")))).
				Select(goqu.I("tl.place_id")).
				Where(goqu.I("t.name").Eq(f.Tag)),
		))
	}

	if br, ok := LookupBudgetRange(f.BudgetRange); ok {
		if br.Max == 0 {
			ds = ds.Where(goqu.I("p.budget").Gte(br.Min))
		} else {
			ds = ds.Where(goqu.I("p.budget").Between(goqu.Range(br.Min, br.Max)))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	countSQL, countArgs, err := ds.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case SortNewest:
		ds = ds.Order(goqu.I("p.created_at").Desc())
	default:
		ds = ds.Order(goqu.I("p.average_rating").Desc(), goqu.I("p.created_at").Desc())
	}
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}
	if f.Offset > 0 {
		ds = ds.Offset(uint(f.Offset))
	}

	listSQL, listArgs, err := ds.Select(goqu.L(placeColumns)).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	list, err := r.queryPlaces(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *Repository) ListByCreator(ctx context.Context, userID int64) ([]Place, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.queryPlaces(ctx, `SELECT `+placeColumns+placeFrom+` WHERE p.created_by = $1 ORDER BY p.created_at DESC`, userID)
}

func (r *Repository) Top(ctx context.Context, n int) ([]Place, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.queryPlaces(ctx, `SELECT `+placeColumns+placeFrom+` ORDER BY p.average_rating DESC, p.created_at DESC LIMIT $1`, n)
}

func (r *Repository) LockByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var locked int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM places WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// SetRating writes only the aggregate columns.
func (r *Repository) SetRating(ctx context.Context, id int64, average decimal.Decimal, total int) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE places SET average_rating = $1, total_ratings = $2 WHERE id = $3`,
		average.StringFixed(2), total, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddImage stores img; a primary image demotes the place's previous primary.
func (r *Repository) AddImage(ctx context.Context, img *PlaceImage) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if img.IsPrimary {
		if _, err := r.db.ExecContext(ctx, `UPDATE place_images SET is_primary = FALSE WHERE place_id = $1 AND is_primary`, img.PlaceID); err != nil {
			return err
		}
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO place_images (place_id, image_url, public_id, caption, is_primary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		img.PlaceID, img.ImageURL, img.PublicID, img.Caption, img.IsPrimary,
	).Scan(&img.ID, &img.CreatedAt)
}

func (r *Repository) ListImages(ctx context.Context, placeID int64) ([]PlaceImage, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, place_id, image_url, public_id, caption, is_primary, created_at
		FROM place_images
		WHERE place_id = $1
		ORDER BY is_primary DESC, created_at`, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []PlaceImage{}
	for rows.Next() {
		var img PlaceImage
		if err := rows.Scan(&img.ID, &img.PlaceID, &img.ImageURL, &img.PublicID, &img.Caption, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *Repository) GetImage(ctx context.Context, placeID, imageID int64) (*PlaceImage, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var img PlaceImage
	err := r.db.QueryRowContext(ctx, `
		SELECT id, place_id, image_url, public_id, caption, is_primary, created_at
		FROM place_images
		WHERE id = $1 AND place_id = $2`, imageID, placeID,
	).Scan(&img.ID, &img.PlaceID, &img.ImageURL, &img.PublicID, &img.Caption, &img.IsPrimary, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *Repository) DeleteImage(ctx context.Context, placeID, imageID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM place_images WHERE id = $1 AND place_id = $2`, imageID, placeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrImageNotFound
	}
	return nil
}
