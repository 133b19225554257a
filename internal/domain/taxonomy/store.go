package taxonomy

import (
	"context"

	"github.com/lib/pq"

	"wandercritic/internal/db"
	"wandercritic/internal/slug"
)

type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListTags(ctx context.Context) ([]Tag, error)
	CategoriesForPlace(ctx context.Context, placeID int64) ([]Category, error)
	TagsForPlace(ctx context.Context, placeID int64) ([]Tag, error)
	// SetPlaceCategories replaces the place's categories with those whose
	// slug is in slugs. Unknown slugs are ignored.
	SetPlaceCategories(ctx context.Context, placeID int64, slugs []string) error
	SetPlaceTags(ctx context.Context, placeID int64, slugs []string) error
	// EnsureCategory and EnsureTag insert by slug if absent; they report
	// whether a row was created.
	EnsureCategory(ctx context.Context, name string) (bool, error)
	EnsureTag(ctx context.Context, name string) (bool, error)
}

type Repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Store {
	return &Repository{db: db}
}

func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	return r.queryCategories(ctx, `SELECT id, name, slug, description FROM place_categories ORDER BY name`)
}

func (r *Repository) CategoriesForPlace(ctx context.Context, placeID int64) ([]Category, error) {
	return r.queryCategories(ctx, `
		SELECT c.id, c.name, c.slug, c.description
		FROM place_categories c
		JOIN place_category_links l ON l.category_id = c.id
		WHERE l.place_id = $1
		ORDER BY c.name`, placeID)
}

func (r *Repository) queryCategories(ctx context.Context, query string, args ...any) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *Repository) ListTags(ctx context.Context) ([]Tag, error) {
	return r.queryTags(ctx, `SELECT id, name, slug FROM tags ORDER BY name`)
}

func (r *Repository) TagsForPlace(ctx context.Context, placeID int64) ([]Tag, error) {
	return r.queryTags(ctx, `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN place_tag_links l ON l.tag_id = t.id
		WHERE l.place_id = $1
		ORDER BY t.name`, placeID)
}

func (r *Repository) queryTags(ctx context.Context, query string, args ...any) ([]Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *Repository) SetPlaceCategories(ctx context.Context, placeID int64, slugs []string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM place_category_links WHERE place_id = $1`, placeID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO place_category_links (place_id, category_id)
		SELECT $1, id FROM place_categories WHERE slug = ANY($2)
		ON CONFLICT DO NOTHING`, placeID, pq.Array(slugs))
	return err
}

func (r *Repository) SetPlaceTags(ctx context.Context, placeID int64, slugs []string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM place_tag_links WHERE place_id = $1`, placeID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO place_tag_links (place_id, tag_id)
		SELECT $1, id FROM tags WHERE slug = ANY($2)
		ON CONFLICT DO NOTHING`, placeID, pq.Array(slugs))
	return err
}

func (r *Repository) EnsureCategory(ctx context.Context, name string) (bool, error) {
	return r.ensure(ctx, `INSERT INTO place_categories (name, slug) VALUES ($1, $2) ON CONFLICT (slug) DO NOTHING`, name)
}

func (r *Repository) EnsureTag(ctx context.Context, name string) (bool, error) {
	return r.ensure(ctx, `INSERT INTO tags (name, slug) VALUES ($1, $2) ON CONFLICT (slug) DO NOTHING`, name)
}

func (r *Repository) ensure(ctx context.Context, query, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, name, slug.Make(name))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
