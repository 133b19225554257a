package reviews

import (
	"context"
	"database/sql"
	"errors"

	"wandercritic/internal/db"
)

type Store interface {
	// Upsert inserts the review or overwrites the rating and comment of the
	// caller's existing review on the same place. created is false on update.
	Upsert(ctx context.Context, review *Review) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*Review, error)
	GetByPlaceAndUser(ctx context.Context, placeID, userID int64) (*Review, error)
	ListByPlace(ctx context.Context, placeID int64) ([]Review, error)
	Delete(ctx context.Context, id int64) error
	// Stats returns the number of reviews on a place and the sum of their ratings.
	Stats(ctx context.Context, placeID int64) (count int, sum int64, err error)
}

type Repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Store {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, review *Review) (bool, error) {
	query := `
		INSERT INTO reviews (place_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (place_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var inserted bool
	err := r.db.QueryRowContext(ctx, query,
		review.PlaceID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt, &inserted)
	return inserted, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Review, error) {
	return r.getOne(ctx, `
		SELECT r.id, r.place_id, r.user_id, r.rating, r.comment, r.created_at, r.updated_at,
		       u.username, u.profile_picture_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`, id)
}

func (r *Repository) GetByPlaceAndUser(ctx context.Context, placeID, userID int64) (*Review, error) {
	return r.getOne(ctx, `
		SELECT r.id, r.place_id, r.user_id, r.rating, r.comment, r.created_at, r.updated_at,
		       u.username, u.profile_picture_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.place_id = $1 AND r.user_id = $2`, placeID, userID)
}

func (r *Repository) getOne(ctx context.Context, query string, args ...any) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var rv Review
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rv.ID,
		&rv.PlaceID,
		&rv.UserID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
		&rv.UpdatedAt,
		&rv.Username,
		&rv.AvatarURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func (r *Repository) ListByPlace(ctx context.Context, placeID int64) ([]Review, error) {
	query := `
		SELECT r.id, r.place_id, r.user_id, r.rating, r.comment, r.created_at, r.updated_at,
		       u.username, u.profile_picture_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.place_id = $1
		ORDER BY r.created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Review{}
	for rows.Next() {
		var rv Review
		err := rows.Scan(
			&rv.ID,
			&rv.PlaceID,
			&rv.UserID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
			&rv.UpdatedAt,
			&rv.Username,
			&rv.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, rv)
	}
	return list, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
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

func (r *Repository) Stats(ctx context.Context, placeID int64) (count int, sum int64, err error) {
	query := `
		SELECT COUNT(id), COALESCE(SUM(rating), 0)
		FROM reviews
		WHERE place_id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err = r.db.QueryRowContext(ctx, query, placeID).Scan(&count, &sum)
	return count, sum, err
}
