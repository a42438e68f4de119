// Package server initializes and runs the hoverboard backend.
// It selects the storage backend, applies migrations, seeds demo data,
// handles graceful shutdown and starts the REST and gRPC servers.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/hoverboard/internal/logging"
	"github.com/dmitrijs2005/hoverboard/internal/server/auth"
	"github.com/dmitrijs2005/hoverboard/internal/server/config"
	"github.com/dmitrijs2005/hoverboard/internal/server/metrics"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hoverboard/internal/server/rest"
	"github.com/dmitrijs2005/hoverboard/internal/server/services"

	gs "github.com/dmitrijs2005/hoverboard/internal/server/grpc"
)

const defaultSecret = "your-secret-key-change-in-production"

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	metrics        *metrics.Metrics
	resolver       *auth.IdentityResolver
	userService    *services.UserService
	projectService *services.ProjectService
	mediaService   *services.MediaService
	seedService    *services.SeedService
}

// NewApp wires every component. It fails when the token secret or algorithm
// is unusable or the database cannot be reached.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	tokens, err := auth.NewTokenService([]byte(c.SecretKey), c.TokenAlgorithm, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}
	if c.SecretKey == defaultSecret {
		logger.Warn(ctx, "Using the default JWT secret; set JWT_SECRET outside development")
	}

	var db *sql.DB
	var rm repomanager.RepositoryManager

	if c.DatabaseDSN != "" {
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db migration error: %w", err)
		}
	} else {
		logger.Warn(ctx, "No database DSN configured, using the in-memory store")
		rm = repomanager.NewMemoryRepositoryManager()
	}

	m := metrics.New()
	hasher := auth.NewHasher(c.BcryptCost)

	app := &App{
		config:         c,
		logger:         logger,
		db:             db,
		repomanager:    rm,
		metrics:        m,
		resolver:       auth.NewIdentityResolver(tokens, rm.Users(db)),
		userService:    services.NewUserService(db, rm, hasher, tokens).WithRecorder(m),
		projectService: services.NewProjectService(db, rm),
		mediaService:   services.NewMediaService(c),
		seedService:    services.NewSeedService(db, rm, hasher),
	}

	if c.SeedSampleData {
		if err := app.seedService.EnsureSampleData(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
		logger.Info(ctx, "Sample data ready", "email", services.DemoEmail)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, rest.Deps{
		Users:     app.userService,
		Projects:  app.projectService,
		Media:     app.mediaService,
		Resolver:  app.resolver,
		Metrics:   app.metrics,
		AccessLog: app.config.LogLevel == "debug",
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.resolver, app.mediaService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both APIs until ctx is cancelled, a signal arrives or either
// server fails, then releases the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.Close()
	app.logger.Info(context.Background(), "App stopped")
}

// Close releases the database handle, if any.
func (app *App) Close() {
	if app.db != nil {
		_ = app.db.Close()
	}
}
