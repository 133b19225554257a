package users

import (
	"context"
	"database/sql"
	"errors"

	"wandercritic/internal/db"
)

type Store interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error)
	SetPassword(ctx context.Context, id int64, pw Password) error
	SetProfilePicture(ctx context.Context, id int64, url string) error
	SetTravelAgent(ctx context.Context, id int64, isAgent bool) error
}

type Repository struct {
	db db.DBTX
}

func NewRepository(db db.DBTX) Store {
	return &Repository{db: db}
}

const userColumns = `id, username, email, password, first_name, last_name, bio,
	profile_picture_url, contact_number, company_name, company_website,
	is_travel_agent, is_superuser, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password.hash,
		&u.FirstName,
		&u.LastName,
		&u.Bio,
		&u.ProfilePictureURL,
		&u.ContactNumber,
		&u.CompanyName,
		&u.CompanyWebsite,
		&u.IsTravelAgent,
		&u.IsSuperuser,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, email, password, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.Password.hash, user.FirstName, user.LastName,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		case db.IsUniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByIDForUpdate locks the user row until the surrounding transaction ends.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active = TRUE`, email))
}

func (r *Repository) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error) {
	query := `
		UPDATE users SET
			first_name      = COALESCE($1, first_name),
			last_name       = COALESCE($2, last_name),
			email           = COALESCE($3, email),
			bio             = COALESCE($4, bio),
			contact_number  = COALESCE($5, contact_number),
			company_name    = COALESCE($6, company_name),
			company_website = COALESCE($7, company_website),
			updated_at      = NOW()
		WHERE id = $8
		RETURNING ` + userColumns

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		upd.FirstName, upd.LastName, upd.Email, upd.Bio,
		upd.ContactNumber, upd.CompanyName, upd.CompanyWebsite, id,
	))
	if db.IsUniqueViolation(err, "users_email_key") {
		return nil, ErrDuplicateEmail
	}
	return u, err
}

func (r *Repository) SetPassword(ctx context.Context, id int64, pw Password) error {
	return r.exec(ctx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, pw.hash, id)
}

func (r *Repository) SetProfilePicture(ctx context.Context, id int64, url string) error {
	return r.exec(ctx, `UPDATE users SET profile_picture_url = $1, updated_at = NOW() WHERE id = $2`, url, id)
}

func (r *Repository) SetTravelAgent(ctx context.Context, id int64, isAgent bool) error {
	return r.exec(ctx, `UPDATE users SET is_travel_agent = $1, updated_at = NOW() WHERE id = $2`, isAgent, id)
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
