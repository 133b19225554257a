package applications

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("travel agent application not found")
	ErrPendingExists     = errors.New("a pending application already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Application is a user's request to become a travel agent.
type Application struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	FullName    string    `json:"full_name"`
	CompanyName string    `json:"company_name"`
	Experience  string    `json:"experience"`
	Website     string    `json:"website"`
	Phone       string    `json:"phone"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined from users
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CreateInput struct {
	UserID      int64
	FullName    string
	CompanyName string
	Experience  string
	Website     string
	Phone       string
}

type Store interface {
	Create(ctx context.Context, in CreateInput) (*Application, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	// GetByIDForUpdate locks the application row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Application, error)
	// GetPendingByUser returns ErrNotFound when the user has nothing pending.
	GetPendingByUser(ctx context.Context, userID int64) (*Application, error)
	ListByUser(ctx context.Context, userID int64) ([]Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)
	SetStatus(ctx context.Context, id int64, status Status) error
}
