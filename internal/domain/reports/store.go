package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wandercritic/internal/db"
)

type Store interface {
	Create(ctx context.Context, in CreateInput) (*Report, error)
	GetByID(ctx context.Context, id int64) (*Report, error)
	// GetByIDForUpdate locks the report row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Report, error)
	List(ctx context.Context, limit, offset int) ([]Report, int, error)
	ListByReporter(ctx context.Context, reporterID int64) ([]Report, error)
	// Close moves a report out of pending, stamping who closed it and when.
	Close(ctx context.Context, id int64, status Status, by int64, at time.Time) error
}

type Repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Store {
	return &Repository{db: db}
}

const reportColumns = `
	SELECT
		r.id, r.reporter_id, r.place_id, r.review_id, r.report_type, r.content_type,
		r.description, r.url, r.status, r.created_at, r.resolved_at, r.resolved_by,
		p.name, p.slug, u.username`

const reportJoins = `
	LEFT JOIN places p ON p.id = r.place_id
	LEFT JOIN users u ON u.id = r.reporter_id
`

const selectReport = reportColumns + `
	FROM reports r` + reportJoins

func scanReport(row interface{ Scan(...any) error }) (*Report, error) {
	var rp Report
	err := row.Scan(
		&rp.ID,
		&rp.ReporterID,
		&rp.PlaceID,
		&rp.ReviewID,
		&rp.ReportType,
		&rp.ContentType,
		&rp.Description,
		&rp.URL,
		&rp.Status,
		&rp.CreatedAt,
		&rp.ResolvedAt,
		&rp.ResolvedBy,
		&rp.PlaceName,
		&rp.PlaceSlug,
		&rp.ReporterUsername,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rp, nil
}

// Create stores a report and returns it as GetByID would, with the place
// and reporter joined in.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*Report, error) {
	const insert = `
		WITH r AS (
			INSERT INTO reports (reporter_id, place_id, review_id, report_type, content_type, description, url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rp, err := scanReport(r.db.QueryRowContext(ctx, insert+reportColumns+`
	FROM r`+reportJoins,
		in.ReporterID,
		nullInt(in.PlaceID),
		nullInt(in.ReviewID),
		in.ReportType,
		in.ContentType,
		in.Description,
		in.URL,
	))
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return rp, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanReport(r.db.QueryRowContext(ctx, selectReport+` WHERE r.id = $1`, id))
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanReport(r.db.QueryRowContext(ctx, selectReport+` WHERE r.id = $1 FOR UPDATE OF r`, id))
}

// List returns one page of all reports, newest first, and the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Report, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, 0, err
	}

	list, err := r.list(ctx, selectReport+` ORDER BY r.created_at DESC, r.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *Repository) ListByReporter(ctx context.Context, reporterID int64) ([]Report, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.list(ctx, selectReport+` WHERE r.reporter_id = $1 ORDER BY r.created_at DESC`, reporterID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rp)
	}
	return out, rows.Err()
}

func (r *Repository) Close(ctx context.Context, id int64, status Status, by int64, at time.Time) error {
	const q = `
		UPDATE reports
		SET status = $1, resolved_at = $2, resolved_by = $3
		WHERE id = $4
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.db.ExecContext(ctx, q, status, at, by, id)
	if err != nil {
		return fmt.Errorf("close report: %w", err)
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
