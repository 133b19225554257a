package websitereviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wandercritic/internal/db"
)

type Store interface {
	// Upsert replaces the user's previous website review, if any.
	Upsert(ctx context.Context, review *WebsiteReview) error
	GetByID(ctx context.Context, id int64) (*WebsiteReview, error)
	ListVisible(ctx context.Context, limit int) ([]WebsiteReview, error)
	Delete(ctx context.Context, id int64) error
	SetVisibility(ctx context.Context, id int64, visible bool) error
}

type Repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Store {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, review *WebsiteReview) error {
	query := `
		INSERT INTO website_reviews (user_id, rating, content, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET rating = EXCLUDED.rating, content = EXCLUDED.content, role = EXCLUDED.role
		RETURNING id, is_visible, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if err := r.db.QueryRowContext(ctx, query,
		review.UserID, review.Rating, review.Content, review.Role,
	).Scan(&review.ID, &review.IsVisible, &review.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert website review: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*WebsiteReview, error) {
	query := `
		SELECT w.id, w.user_id, w.rating, w.content, w.role, w.is_visible, w.created_at, u.username
		FROM website_reviews w
		JOIN users u ON u.id = w.user_id
		WHERE w.id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var w WebsiteReview
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.Rating, &w.Content, &w.Role, &w.IsVisible, &w.CreatedAt, &w.Username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ListVisible retrieves the newest visible reviews.
func (r *Repository) ListVisible(ctx context.Context, limit int) ([]WebsiteReview, error) {
	query := `
		SELECT w.id, w.user_id, w.rating, w.content, w.role, w.is_visible, w.created_at, u.username
		FROM website_reviews w
		JOIN users u ON u.id = w.user_id
		WHERE w.is_visible
		ORDER BY w.created_at DESC
		LIMIT $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query website reviews: %w", err)
	}
	defer rows.Close()

	list := []WebsiteReview{}
	for rows.Next() {
		var w WebsiteReview
		if err := rows.Scan(&w.ID, &w.UserID, &w.Rating, &w.Content, &w.Role, &w.IsVisible, &w.CreatedAt, &w.Username); err != nil {
			return nil, fmt.Errorf("failed to scan website review row: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM website_reviews WHERE id = $1`, id)
}

func (r *Repository) SetVisibility(ctx context.Context, id int64, visible bool) error {
	return r.exec(ctx, `UPDATE website_reviews SET is_visible = $1 WHERE id = $2`, visible, id)
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, args...)
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
