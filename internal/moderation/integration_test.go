//go:build integration

package moderation_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"wandercritic"
	"wandercritic/internal/db"
	"wandercritic/internal/domain/applications"
	"wandercritic/internal/domain/places"
	"wandercritic/internal/domain/reports"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/domain/users"
	"wandercritic/internal/metrics"
	"wandercritic/internal/moderation"
	"wandercritic/internal/serrors"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "wandercritic"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDB,
			},
			WaitingFor: wait.ForListeningPort("5432").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	addr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", testUser, testPassword, host, port.Int(), testDB)

	var sqlDB *sql.DB
	// the port opens before postgres accepts connections
	require.Eventually(t, func() bool {
		pool, h, err := db.New(addr, 5, "1m")
		if err != nil {
			return false
		}
		sqlDB = h
		t.Cleanup(pool.Close)
		return true
	}, 30*time.Second, 500*time.Millisecond)
	t.Cleanup(func() { sqlDB.Close() })

	goose.SetBaseFS(wandercritic.Migrations)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, "migrations"))

	return sqlDB
}

type fixture struct {
	store *storage.Container
	svc   *moderation.Service
}

func newFixture(t *testing.T) *fixture {
	store := storage.NewContainer(startPostgres(t))
	svc := moderation.NewService(store, zap.NewNop().Sugar(), metrics.New(prometheus.NewRegistry()))
	return &fixture{store: store, svc: svc}
}

func (f *fixture) user(t *testing.T, username string) *users.User {
	t.Helper()

	u := &users.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, u.Password.Set("correct horse battery"))
	require.NoError(t, f.store.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) place(t *testing.T, name string, creator *users.User) *places.Place {
	t.Helper()

	p := &places.Place{
		Name:             name,
		Slug:             name,
		Description:      "A place worth the trip.",
		ShortDescription: "Worth the trip",
		Location:         "Highlands",
		CreatedBy:        creator.ID,
	}
	require.NoError(t, f.store.Places.Create(context.Background(), p))
	return p
}

func (f *fixture) review(t *testing.T, p *places.Place, u *users.User, rating int) *moderation.ReviewResult {
	t.Helper()

	res, err := f.svc.SubmitReview(context.Background(), moderation.ReviewInput{
		PlaceID: p.ID, UserID: u.ID, Rating: rating, Comment: "Visited in May",
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) assertRating(t *testing.T, placeID int64, average string, total int) {
	t.Helper()

	p, err := f.store.Places.GetByID(context.Background(), placeID)
	require.NoError(t, err)
	assert.Equal(t, average, p.AverageRating.StringFixed(2))
	assert.Equal(t, total, p.TotalRatings)
}

func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}

	f := newFixture(t)
	ctx := context.Background()

	agent := f.user(t, "callum")
	una := f.user(t, "una")
	vik := f.user(t, "vik")
	admin := f.user(t, "root")

	t.Run("delete recomputes the rating", func(t *testing.T) {
		p := f.place(t, "glencoe", agent)

		f.review(t, p, una, 3)
		five := f.review(t, p, vik, 5)
		f.assertRating(t, p.ID, "4.00", 2)

		rating, err := f.svc.DeleteReview(ctx, five.Review.ID, moderation.Actor{UserID: vik.ID})
		require.NoError(t, err)
		assert.Equal(t, "3.00", rating.Average.StringFixed(2))
		f.assertRating(t, p.ID, "3.00", 1)
	})

	t.Run("new reviewer moves the average", func(t *testing.T) {
		p := f.place(t, "isle-of-skye", agent)

		f.review(t, p, vik, 3)
		res := f.review(t, p, una, 5)
		assert.True(t, res.Created)
		f.assertRating(t, p.ID, "4.00", 2)
	})

	t.Run("second review by the same user overwrites", func(t *testing.T) {
		p := f.place(t, "loch-ness", agent)

		first := f.review(t, p, una, 2)
		second := f.review(t, p, una, 4)
		assert.True(t, first.Created)
		assert.False(t, second.Created)
		assert.Equal(t, first.Review.ID, second.Review.ID)

		list, err := f.store.Reviews.ListByPlace(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 4, list[0].Rating)
		f.assertRating(t, p.ID, "4.00", 1)
	})

	t.Run("rounding is half up", func(t *testing.T) {
		p := f.place(t, "cairngorms", agent)

		f.review(t, p, una, 5)
		f.review(t, p, vik, 5)
		f.review(t, p, admin, 4)
		f.assertRating(t, p.ID, "4.67", 3)
	})

	t.Run("approve makes the applicant an agent", func(t *testing.T) {
		u := f.user(t, "morag")

		a, err := f.svc.SubmitApplication(ctx, u.ID, moderation.ApplicationInput{
			FullName: "Morag Stewart", Experience: "Ran tours for a decade", Phone: "+44 7700 900001",
		})
		require.NoError(t, err)

		_, err = f.svc.SubmitApplication(ctx, u.ID, moderation.ApplicationInput{
			FullName: "Morag Stewart", Experience: "Again", Phone: "+44 7700 900001",
		})
		assert.ErrorIs(t, err, serrors.ErrConflict)

		approved, err := f.svc.ApproveApplication(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, applications.StatusApproved, approved.Status)

		got, err := f.store.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.IsTravelAgent)

		_, err = f.svc.RejectApplication(ctx, a.ID)
		assert.ErrorIs(t, err, serrors.ErrConflict)
	})

	t.Run("reject leaves the user alone", func(t *testing.T) {
		u := f.user(t, "ewan")

		a, err := f.svc.SubmitApplication(ctx, u.ID, moderation.ApplicationInput{
			FullName: "Ewan Ross", Experience: "Some", Phone: "+44 7700 900002",
		})
		require.NoError(t, err)

		rejected, err := f.svc.RejectApplication(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, applications.StatusRejected, rejected.Status)

		got, err := f.store.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, got.IsTravelAgent)
	})

	t.Run("closed reports cannot change", func(t *testing.T) {
		p := f.place(t, "st-kilda", agent)

		rp, err := f.svc.FileReport(ctx, moderation.ReportInput{
			ReporterID:  una.ID,
			PlaceID:     &p.ID,
			ReportType:  reports.TypeMisinformation,
			ContentType: reports.ContentPlace,
			Description: "Ferry times are wrong",
		})
		require.NoError(t, err)
		assert.Equal(t, "st-kilda", rp.Target())

		resolved, err := f.svc.ResolveReport(ctx, rp.ID, admin.ID)
		require.NoError(t, err)
		require.True(t, resolved.ResolvedAt.Valid)

		_, err = f.svc.DismissReport(ctx, rp.ID, agent.ID)
		assert.ErrorIs(t, err, serrors.ErrConflict)

		got, err := f.store.Reports.GetByID(ctx, rp.ID)
		require.NoError(t, err)
		assert.Equal(t, reports.StatusResolved, got.Status)
		assert.Equal(t, admin.ID, got.ResolvedBy.Int64)
		assert.True(t, resolved.ResolvedAt.Time.Equal(got.ResolvedAt.Time))
	})

	t.Run("website review is one per user", func(t *testing.T) {
		_, err := f.svc.SubmitWebsiteReview(ctx, vik.ID, 4, "Handy")
		require.NoError(t, err)
		second, err := f.svc.SubmitWebsiteReview(ctx, vik.ID, 5, "Very handy")
		require.NoError(t, err)
		assert.Equal(t, 5, second.Rating)

		list, err := f.store.WebsiteReviews.ListVisible(ctx, 50)
		require.NoError(t, err)
		n := 0
		for _, wr := range list {
			if wr.UserID == vik.ID {
				n++
			}
		}
		assert.Equal(t, 1, n)
	})
}
