package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/metrics"
	"github.com/cmmcleod/coriolis-sub002/internal/adapters/persistence"
	"github.com/cmmcleod/coriolis-sub002/internal/adapters/reference"
	"github.com/cmmcleod/coriolis-sub002/internal/adapters/schema"
	"github.com/cmmcleod/coriolis-sub002/internal/application/common"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/commands"
	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/queries"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/config"
	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/database"
	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/logging"
)

// app holds the collaborators a command runs against
type app struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	mediator mediator.Mediator

	db            *gorm.DB
	logCloser     io.Closer
	metricsServer *metrics.Server
}

// appOptions selects the optional parts of the application
type appOptions struct {
	// store opens the database and registers the saved build handlers
	store bool
}

// newApp loads configuration and wires the mediator. Callers must Close it.
func newApp(opts appOptions) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	a := &app{cfg: cfg, logCloser: closer}

	if cfg.Catalog.Path != "" {
		a.catalog, err = reference.LoadDir(cfg.Catalog.Path)
	} else {
		a.catalog, err = reference.Load()
	}
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.mediator = mediator.NewMediator()
	a.mediator.RegisterMiddleware(common.LoggingMiddleware(logging.NewAdapter(logging.Named(logger, "mediator"))))
	if cfg.Metrics.Enabled {
		collector, err := a.initMetrics()
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(collector))
	}

	clock := shared.NewRealClock()
	if err := registerCatalogHandlers(a.mediator, a.catalog, validator, clock); err != nil {
		a.Close()
		return nil, err
	}

	if opts.store {
		a.db, err = database.NewConnection(&cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.AutoMigrate(a.db); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		repo := persistence.NewGormSavedBuildRepository(a.db)
		if err := registerStoreHandlers(a.mediator, a.catalog, repo, validator, clock); err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

// initMetrics registers the collectors and starts the scrape endpoint for
// the lifetime of the command
func (a *app) initMetrics() (*metrics.RequestMetricsCollector, error) {
	metrics.InitRegistry()

	requestCollector := metrics.NewRequestMetricsCollector()
	if err := requestCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register request metrics: %w", err)
	}
	buildCollector := metrics.NewBuildMetricsCollector()
	if err := buildCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register build metrics: %w", err)
	}
	metrics.SetGlobalBuildCollector(buildCollector)

	server, err := metrics.NewServer(a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path)
	if err != nil {
		return nil, err
	}
	server.Start()
	a.metricsServer = server

	return requestCollector, nil
}

// send dispatches a request with a background context
func (a *app) send(request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(context.Background(), request)
}

// Close releases the database, metrics endpoint and log output
func (a *app) Close() {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = a.metricsServer.Shutdown(ctx)
		cancel()
		metrics.SetGlobalBuildCollector(nil)
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// withApp runs fn against a freshly wired application
func withApp(opts appOptions, fn func(a *app) error) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func registerCatalogHandlers(m mediator.Mediator, cat *catalog.Catalog, validator *schema.Validator, clock shared.Clock) error {
	registrations := []error{
		mediator.RegisterHandler[*queries.ListShipsQuery](m, queries.NewListShipsHandler(cat)),
		mediator.RegisterHandler[*queries.SlotOptionsQuery](m, queries.NewSlotOptionsHandler(cat)),
		mediator.RegisterHandler[*queries.InspectBuildQuery](m, queries.NewInspectBuildHandler(cat)),
		mediator.RegisterHandler[*queries.CompareBuildsQuery](m, queries.NewCompareBuildsHandler(cat)),
		mediator.RegisterHandler[*queries.ExportBuildQuery](m, queries.NewExportBuildHandler(cat, validator, clock)),
		mediator.RegisterHandler[*queries.ImportBuildQuery](m, queries.NewImportBuildHandler(cat, validator)),
		mediator.RegisterHandler[*commands.ModifyBuildCommand](m, commands.NewModifyBuildHandler(cat)),
	}
	return firstError(registrations)
}

func registerStoreHandlers(
	m mediator.Mediator,
	cat *catalog.Catalog,
	repo *persistence.GormSavedBuildRepository,
	validator *schema.Validator,
	clock shared.Clock,
) error {
	registrations := []error{
		mediator.RegisterHandler[*commands.SaveBuildCommand](m, commands.NewSaveBuildHandler(cat, repo, validator, clock)),
		mediator.RegisterHandler[*commands.DeleteBuildCommand](m, commands.NewDeleteBuildHandler(repo)),
		mediator.RegisterHandler[*queries.LoadBuildQuery](m, queries.NewLoadBuildHandler(cat, repo)),
		mediator.RegisterHandler[*queries.ListBuildsQuery](m, queries.NewListBuildsHandler(repo)),
	}
	return firstError(registrations)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("failed to register handler: %w", err)
		}
	}
	return nil
}
