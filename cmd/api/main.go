package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wandercritic"
	"wandercritic/internal/auth"
	"wandercritic/internal/config"
	"wandercritic/internal/db"
	"wandercritic/internal/domain/storage"
	"wandercritic/internal/domain/taxonomy"
	"wandercritic/internal/mailer"
	"wandercritic/internal/metrics"
	"wandercritic/internal/moderation"
	"wandercritic/internal/ratelimiter"
	"wandercritic/internal/slug"
)

// NewLogger creates a new zap logger with color.
func NewLogger(env string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if env == "development" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			WanderCritic API
//	@description	API for WanderCritic, travel destinations rated and reviewed by travellers.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	rootCmd := &cobra.Command{
		Use:   "wandercritic",
		Short: "WanderCritic API server and maintenance commands",
	}

	var envFile string
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "optional .env file")

	rootCmd.AddCommand(
		serveCommand(&envFile),
		migrateCommand(&envFile),
		seedCommand(&envFile),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads the configuration, the logger and the database handles
// every subcommand needs. The returned func releases them.
func bootstrap(envFile string) (*config.Config, *zap.SugaredLogger, *sql.DB, func(), error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger, err := NewLogger(cfg.Env)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("could not create logger: %w", err)
	}

	pool, sqlDB, err := db.New(cfg.DB.Addr, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleTime)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, nil, err
	}
	logger.Info("database connection pool established")

	cleanup := func() {
		_ = sqlDB.Close()
		pool.Close()
		_ = logger.Sync()
	}

	return cfg, logger, sqlDB, cleanup, nil
}

func serveCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Runs the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, sqlDB, cleanup, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer cleanup()

			app, err := newApplication(cfg, logger, sqlDB)
			if err != nil {
				logger.Errorw("could not build application", "error", err)
				return err
			}

			//Metrics collected http://localhost:8080/v1/debug/vars
			expvar.NewString("version").Set(version)
			expvar.Publish("database", expvar.Func(func() any {
				return sqlDB.Stats()
			}))
			expvar.Publish("goroutines", expvar.Func(func() any {
				return runtime.NumGoroutine()
			}))

			return app.run(app.mount())
		},
	}
}

func newApplication(cfg *config.Config, logger *zap.SugaredLogger, sqlDB *sql.DB) (*application, error) {
	store := storage.NewContainer(sqlDB)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	if err := metrics.RegisterDBStats(reg, sqlDB); err != nil {
		return nil, err
	}

	// mail falls back to the log when no SMTP server is configured
	var mail mailer.Client
	if cfg.Mail.Host != "" {
		smtp, err := mailer.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.FromEmail)
		if err != nil {
			return nil, err
		}
		mail = smtp
	} else {
		logger.Warn("SMTP_HOST is not set, emails will only be logged")
		mail = mailer.NewLogMailer(logger)
	}

	var uploader ImageUploader
	if cfg.CloudinaryURL != "" {
		cld, err := newCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			return nil, err
		}
		uploader = cld
	} else {
		logger.Warn("CLOUDINARY_URL is not set, image uploads are disabled")
	}

	var limiter ratelimiter.Limiter
	if cfg.RateLimiter.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RateLimiter.RedisAddr})
		limiter = ratelimiter.NewRedisLimiter(rdb, cfg.RateLimiter.RequestsPerTimeFrame, cfg.RateLimiter.TimeFrame, logger)
	} else {
		limiter = ratelimiter.NewFixedWindowLimiter(cfg.RateLimiter.RequestsPerTimeFrame, cfg.RateLimiter.TimeFrame)
	}

	slugs, err := slug.NewDisambiguator(cfg.SlugSalt)
	if err != nil {
		return nil, err
	}

	return &application{
		config:     cfg,
		store:      store,
		moderation: moderation.NewService(store, logger, m),
		logger:     logger,
		uploader:   uploader,
		mailer:     mail,
		authenticator: auth.NewJWTAuthenticator(
			cfg.Auth.Token.Secret,
			cfg.Auth.Token.RefreshSecret,
			cfg.Auth.Token.Issuer,
			cfg.Auth.Token.AccessTokenExp,
			cfg.Auth.Token.RefreshTokenExp,
		),
		rateLimiter:    limiter,
		slugs:          slugs,
		metrics:        m,
		metricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}, nil
}

func migrateCommand(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Migrates the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			_, logger, sqlDB, cleanup, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer cleanup()

			goose.SetBaseFS(wandercritic.Migrations)
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("could not set goose dialect to postgres: %w", err)
			}

			switch direction {
			case "down":
				err = goose.Down(sqlDB, "migrations")
			case "status":
				err = goose.Status(sqlDB, "migrations")
			default:
				err = goose.Up(sqlDB, "migrations")
			}
			if err != nil {
				logger.Errorw("migration failed", "direction", direction, "error", err)
				return err
			}

			logger.Infow("migration finished", "direction", direction)
			return nil
		},
	}

	return cmd
}

func seedCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populates the predefined place categories and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, sqlDB, cleanup, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer cleanup()

			created, err := seedTaxonomy(cmd.Context(), storage.NewContainer(sqlDB).Taxonomy, logger)
			if err != nil {
				return err
			}

			logger.Infow("taxonomy seeded", "created", created)
			return nil
		},
	}
}

// seedTaxonomy inserts the default categories and tags that are missing and
// returns how many rows it created. Running it twice creates nothing.
func seedTaxonomy(ctx context.Context, store taxonomy.Store, logger *zap.SugaredLogger) (int, error) {
	created := 0
	for _, name := range taxonomy.DefaultCategories {
		ok, err := store.EnsureCategory(ctx, name)
		if err != nil {
			return created, fmt.Errorf("seed category %q: %w", name, err)
		}
		if ok {
			created++
			logger.Infow("created category", "name", name)
		}
	}

	for _, name := range taxonomy.DefaultTags {
		ok, err := store.EnsureTag(ctx, name)
		if err != nil {
			return created, fmt.Errorf("seed tag %q: %w", name, err)
		}
		if ok {
			created++
			logger.Infow("created tag", "name", name)
		}
	}

	return created, nil
}
