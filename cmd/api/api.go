package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"wandercritic/docs" //this is required to generate swagger docs
	"wandercritic/internal/auth"
	"wandercritic/internal/config"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/mailer"
	"wandercritic/internal/metrics"
	"wandercritic/internal/moderation"
	"wandercritic/internal/ratelimiter"
	"wandercritic/internal/slug"
)

type application struct {
	config         *config.Config
	store          *storage.Container
	moderation     moderation.Moderator
	logger         *zap.SugaredLogger
	uploader       ImageUploader
	mailer         mailer.Client
	authenticator  auth.Authenticator
	rateLimiter    ratelimiter.Limiter
	slugs          *slug.Disambiguator
	metrics        *metrics.Metrics
	metricsHandler http.Handler
	wg             sync.WaitGroup
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.FrontendURL, "https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}
	r.Use(app.RateLimiterMiddleware)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		if app.metricsHandler != nil {
			r.With(app.BasicAuthMiddleware()).Handle("/metrics", app.metricsHandler)
		}

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.Addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Get("/home", app.homeHandler)
		r.Get("/categories", app.listCategoriesHandler)
		r.Get("/tags", app.listTagsHandler)
		r.Get("/budget-ranges", app.listBudgetRangesHandler)
		r.Get("/agents/{userID}/places", app.agentPlacesHandler)

		r.Route("/places", func(r chi.Router) {
			r.Get("/", app.explorePlacesHandler)
			r.With(app.AuthTokenMiddleware, app.RequireTravelAgent).Post("/", app.createPlaceHandler)

			r.Route("/{slug}", func(r chi.Router) {
				r.Use(app.placeContextMiddleware)
				r.With(app.OptionalAuthMiddleware).Get("/", app.getPlaceHandler)

				r.Group(func(r chi.Router) {
					r.Use(app.AuthTokenMiddleware)
					r.Patch("/", app.updatePlaceHandler)
					r.Delete("/", app.deletePlaceHandler)

					r.Post("/images", app.uploadPlaceImageHandler)
					r.Delete("/images/{imageID}", app.deletePlaceImageHandler)

					r.Post("/reviews", app.submitReviewHandler)
					r.Delete("/reviews/{reviewID}", app.deleteReviewHandler)

					r.Post("/reports", app.reportPlaceHandler)
					r.Post("/reviews/{reviewID}/reports", app.reportReviewHandler)
				})
			})
		})

		r.With(app.AuthTokenMiddleware).Post("/bug-reports", app.reportBugHandler)

		r.Route("/users/me", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.getMeHandler)
			r.Patch("/", app.updateMeHandler)
			r.Put("/password", app.changePasswordHandler)
			r.Post("/profile-picture", app.uploadProfilePictureHandler)
			r.Get("/places", app.myPlacesHandler)
			r.Get("/reports", app.myReportsHandler)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/", app.submitApplicationHandler)
			r.Get("/me", app.myApplicationsHandler)
		})

		r.Route("/website-reviews", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Put("/", app.submitWebsiteReviewHandler)
			r.Delete("/{reviewID}", app.deleteWebsiteReviewHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware, app.RequireSuperuser)
			r.Get("/applications", app.listPendingApplicationsHandler)
			r.Post("/applications/{applicationID}/{action}", app.applicationActionHandler)
			r.Get("/reports", app.listReportsHandler)
			r.Post("/reports/{reportID}/{action}", app.reportActionHandler)
			r.Patch("/website-reviews/{reviewID}", app.setWebsiteReviewVisibilityHandler)
		})

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.ExternalURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if err := srv.Shutdown(ctx); err != nil {
			shutdown <- err
			return
		}

		app.logger.Infow("completing background tasks", "addr", app.config.Addr)
		app.wg.Wait()
		shutdown <- nil
	}()

	app.logger.Infow("server has started", "addr", app.config.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.Addr, "env", app.config.Env)

	return nil
}
