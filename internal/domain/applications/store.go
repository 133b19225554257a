package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wandercritic/internal/db"
)

type Repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Store {
	return &Repository{db: db}
}

const selectApplication = `
	SELECT
		a.id,
		a.user_id,
		a.full_name,
		a.company_name,
		a.experience,
		a.website,
		a.phone,
		a.status,
		a.created_at,
		a.updated_at,
		u.username,
		u.email
	FROM travel_agent_applications a
	JOIN users u ON u.id = a.user_id
`

func scanApplication(row interface{ Scan(...any) error }) (*Application, error) {
	var a Application
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.FullName,
		&a.CompanyName,
		&a.Experience,
		&a.Website,
		&a.Phone,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Username,
		&a.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Create(ctx context.Context, in CreateInput) (*Application, error) {
	const q = `
		INSERT INTO travel_agent_applications (user_id, full_name, company_name, experience, website, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at, updated_at
	`

	a := &Application{
		UserID:      in.UserID,
		FullName:    in.FullName,
		CompanyName: in.CompanyName,
		Experience:  in.Experience,
		Website:     in.Website,
		Phone:       in.Phone,
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRowContext(ctx, q,
		in.UserID,
		in.FullName,
		in.CompanyName,
		in.Experience,
		in.Website,
		in.Phone,
	).Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "travel_agent_applications_one_pending") {
			return nil, ErrPendingExists
		}
		return nil, fmt.Errorf("create travel agent application: %w", err)
	}

	return a, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Application, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanApplication(r.db.QueryRowContext(ctx, selectApplication+` WHERE a.id = $1`, id))
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*Application, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanApplication(r.db.QueryRowContext(ctx, selectApplication+` WHERE a.id = $1 FOR UPDATE OF a`, id))
}

func (r *Repository) GetPendingByUser(ctx context.Context, userID int64) (*Application, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanApplication(r.db.QueryRowContext(ctx,
		selectApplication+` WHERE a.user_id = $1 AND a.status = 'pending' ORDER BY a.created_at DESC LIMIT 1`, userID))
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Application, error) {
	return r.list(ctx, selectApplication+` WHERE a.user_id = $1 ORDER BY a.created_at DESC`, userID)
}

func (r *Repository) ListByStatus(ctx context.Context, status Status) ([]Application, error) {
	return r.list(ctx, selectApplication+` WHERE a.status = $1 ORDER BY a.created_at DESC`, status)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Application, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list travel agent applications: %w", err)
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) error {
	const q = `
		UPDATE travel_agent_applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
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
