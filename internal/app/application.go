package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	adminsvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/admin"
	commercesvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/commerce"
	convertsvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/convert"
	generatesvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/generate"
	insightsvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/insight"
	"github.com/D-dracula/MicroTools-sub001/internal/app/services/maintenance"
	validatesvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/validate"
	"github.com/D-dracula/MicroTools-sub001/internal/app/storage"
	"github.com/D-dracula/MicroTools-sub001/internal/app/storage/memory"
	"github.com/D-dracula/MicroTools-sub001/internal/app/system"
	"github.com/D-dracula/MicroTools-sub001/internal/config"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users   storage.UserStore
	Errors  storage.ErrorStore
	Content storage.ContentStore
	Usage   storage.UsageStore
}

// Options carries optional application wiring.
type Options struct {
	Tools *config.Tools
	// DB is used for migration status reporting; nil means memory-backed.
	DB *sql.DB
	// SentimentURL enables remote sentiment scoring when set.
	SentimentURL string
	SentimentKey string
	// UsageRetention bounds how long tool usage events are kept.
	// Defaults to 90 days.
	UsageRetention time.Duration
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Commerce *commercesvc.Service
	Convert  *convertsvc.Service
	Generate *generatesvc.Service
	Validate *validatesvc.Service
	Insight  *insightsvc.Service
	Admin    *adminsvc.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Errors == nil {
		stores.Errors = mem
	}
	if stores.Content == nil {
		stores.Content = mem
	}
	if stores.Usage == nil {
		stores.Usage = mem
	}
	if opts.Tools == nil {
		opts.Tools = config.DefaultTools()
	}
	if opts.UsageRetention <= 0 {
		opts.UsageRetention = 90 * 24 * time.Hour
	}

	manager := system.NewManager()

	var scorer insightsvc.Scorer
	if opts.SentimentURL != "" {
		httpClient := &http.Client{Timeout: 10 * time.Second}
		s, err := insightsvc.NewHTTPScorer(httpClient, opts.SentimentURL, opts.SentimentKey, log)
		if err != nil {
			log.WithError(err).Warn("configure sentiment scorer")
		} else {
			scorer = s
		}
	} else {
		log.Warn("INSIGHT_MODEL_URL not set; sentiment scoring uses the built-in lexicon")
	}

	adminService := adminsvc.New(stores.Users, stores.Errors, stores.Content, stores.Usage, opts.DB, log)

	app := &Application{
		manager:  manager,
		log:      log,
		Commerce: commercesvc.New(opts.Tools, log),
		Convert:  convertsvc.New(log),
		Generate: generatesvc.New(opts.Tools, log),
		Validate: validatesvc.New(log),
		Insight:  insightsvc.New(scorer, log),
		Admin:    adminService,
	}

	housekeeping := maintenance.New([]maintenance.Job{
		{
			Name: "prune-usage",
			Spec: "@daily",
			Run: func(ctx context.Context) error {
				_, err := adminService.PruneUsage(ctx, opts.UsageRetention)
				return err
			},
		},
	}, log)
	if err := manager.Register(housekeeping); err != nil {
		return nil, fmt.Errorf("register maintenance: %w", err)
	}

	return app, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
