// Package main runs the micro-tools API gateway.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	app "github.com/D-dracula/MicroTools-sub001/internal/app"
	"github.com/D-dracula/MicroTools-sub001/internal/app/httpapi"
	"github.com/D-dracula/MicroTools-sub001/internal/app/metrics"
	"github.com/D-dracula/MicroTools-sub001/internal/app/storage/postgres"
	"github.com/D-dracula/MicroTools-sub001/internal/config"
	"github.com/D-dracula/MicroTools-sub001/internal/middleware"
	"github.com/D-dracula/MicroTools-sub001/internal/platform/migrations"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("gateway").WithError(err).Fatal("load configuration")
	}

	log := logger.New(logger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Component: "gateway",
	})

	tools, err := config.LoadTools(cfg.ToolsFile)
	if err != nil {
		log.WithError(err).Warnf("load %s failed, using built-in tool tables", cfg.ToolsFile)
		tools = config.DefaultTools()
	}

	stores := app.Stores{}
	opts := app.Options{
		Tools:          tools,
		SentimentURL:   cfg.Insight.ModelURL,
		SentimentKey:   cfg.Insight.ModelKey,
		UsageRetention: time.Duration(cfg.Admin.UsageRetentionDays) * 24 * time.Hour,
	}

	if cfg.Database.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN)
		if err != nil {
			log.WithError(err).Fatal("connect to postgres")
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := migrations.Apply(migrateCtx, db.DB); err != nil {
			cancel()
			log.WithError(err).Fatal("apply migrations")
		}
		cancel()

		store := postgres.New(db)
		stores = app.Stores{Users: store, Errors: store, Content: store, Usage: store}
		opts.DB = db.DB
		log.Info("using postgres store")
	} else {
		log.Warn("DATABASE_URL not set; using in-memory store")
	}

	application, err := app.New(stores, opts, log)
	if err != nil {
		log.WithError(err).Fatal("initialise application")
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT_SECRET not set; admin sessions will not survive restarts")
		cfg.Auth.JWTSecret = randomSecret()
	}
	auth := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, log, []string{"/admin/login"})

	apiHandler, err := httpapi.New(application, auth, httpapi.Options{
		AuditFile: cfg.Admin.AuditFile,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("initialise http api")
	}

	stop := make(chan struct{})
	var limiterHandler func(http.Handler) http.Handler
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		limiter := middleware.NewRedisRateLimiter(client, int64(cfg.RateLimit.RequestsPerSecond), time.Second, log)
		limiterHandler = limiter.Handler
		log.Info("using redis-backed rate limiter")
	} else {
		limiter := middleware.NewRateLimiter(float64(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst, log)
		limiter.StartCleanup(10*time.Minute, time.Hour, stop)
		limiterHandler = limiter.Handler
	}

	accessLog := middleware.NewAccessLogger(zerolog.New(os.Stdout).With().Timestamp().Str("component", "http").Logger())
	cors := middleware.NewCORSMiddleware(cfg.Server.Origins())

	handler := accessLog.Handler(cors.Handler(limiterHandler(metrics.InstrumentHandler(apiHandler))))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := application.Start(ctx); err != nil {
		log.WithError(err).Fatal("start application services")
	}

	go func() {
		log.Infof("gateway listening on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
	close(stop)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("application stop")
	}
	log.Info("gateway stopped")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
