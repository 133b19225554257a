package storage

import (
	"context"
	"database/sql"
	"fmt"

	"wandercritic/internal/db"
	"wandercritic/internal/domain/applications"
	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/reports"
	"wandercritic/internal/domain/reviews"
	"wandercritic/internal/domain/taxonomy"
	"wandercritic/internal/domain/users"
	"wandercritic/internal/domain/websitereviews"
)

// Repos is the full set of repositories bound to one database handle.
type Repos struct {
	Users          users.Store
	Places         places.Store
	Taxonomy       taxonomy.Store
	Reviews        reviews.Store
	Applications   applications.Store
	Reports        reports.Store
	WebsiteReviews websitereviews.Store
}

func newRepos(h db.DBTX) Repos {
	return Repos{
		Users:          users.NewRepository(h),
		Places:         places.NewRepository(h),
		Taxonomy:       taxonomy.NewRepository(h),
		Reviews:        reviews.NewRepository(h),
		Applications:   applications.NewRepository(h),
		Reports:        reports.NewRepository(h),
		WebsiteReviews: websitereviews.NewRepository(h),
	}
}

type Container struct {
	db *sql.DB // IMPORTANT: set the handle so WithTx works
	Repos
}

func NewContainer(db *sql.DB) *Container {
	return &Container{
		db:    db,
		Repos: newRepos(db),
	}
}

// Tx is a temporary, tx-scoped set of repos for atomic units of work.
type Tx struct {
	Repos
}

// WithTx runs fn inside a single transaction. The transaction commits only
// if fn returns nil; any error rolls everything back.
func (c *Container) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	if c.db == nil {
		return fmt.Errorf("storage container db is nil (did you forget to set it in NewContainer?)")
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe even if already committed
	}()

	if err := fn(&Tx{Repos: newRepos(tx)}); err != nil {
		return err
	}

	return tx.Commit()
}

// Ping reports whether the database is reachable.
func (c *Container) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
