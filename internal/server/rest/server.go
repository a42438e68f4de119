// Package rest serves the public JSON API under /api using fiber.
package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/logging"
	"github.com/dmitrijs2005/hoverboard/internal/server/auth"
	"github.com/dmitrijs2005/hoverboard/internal/server/metrics"
	"github.com/dmitrijs2005/hoverboard/internal/server/services"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
)

const shutdownTimeout = 5 * time.Second

// Presigner issues upload URLs for user media.
type Presigner interface {
	PresignUpload(ctx context.Context, userID, kind string) (*services.UploadTicket, error)
}

type Deps struct {
	Users    *services.UserService
	Projects *services.ProjectService
	Media    Presigner
	Resolver *auth.IdentityResolver
	Metrics  *metrics.Metrics
	// AccessLog enables fiber's request logger on stdout.
	AccessLog bool
}

type Server struct {
	address  string
	app      *fiber.App
	logger   logging.Logger
	users    *services.UserService
	projects *services.ProjectService
	media    Presigner
	resolver *auth.IdentityResolver
	metrics  *metrics.Metrics
}

func NewServer(address string, l logging.Logger, d Deps) *Server {
	s := &Server{
		address:  address,
		logger:   l.With("module", "rest_server"),
		users:    d.Users,
		projects: d.Projects,
		media:    d.Media,
		resolver: d.Resolver,
		metrics:  d.Metrics,
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "hoverboard",
		ErrorHandler: errorHandler(s.logger),
	})

	s.app.Use(recoverer.New())
	if d.AccessLog {
		s.app.Use(logger.New(logger.Config{
			Format:     "${time}|${status}|${latency}|${ip}|${method}|${path}|${error}\n",
			TimeFormat: "2006/01/02 15:04:05",
		}))
	}
	s.app.Use(cors.New())
	s.app.Use(s.observe)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api")

	api.Get("/", s.root)

	api.Post("/auth/register", s.register)
	api.Post("/auth/login", s.login)
	api.Post("/auth/select-username", s.requireAuth, s.selectUsername)
	api.Get("/auth/me", s.requireAuth, s.me)

	api.Put("/users/me", s.requireAuth, s.updateProfile)
	api.Post("/users/me/avatar-upload", s.requireAuth, s.avatarUpload)
	api.Get("/users/:username", s.userProfile)
	api.Get("/users/:username/projects", s.userProjects)

	api.Get("/projects", s.listProjects)
	api.Post("/projects", s.requireAuth, s.createProject)
	api.Post("/projects/image-upload", s.requireAuth, s.projectImageUpload)
	api.Get("/projects/:id", s.getProject)
	api.Put("/projects/:id", s.requireAuth, s.updateProject)
	api.Delete("/projects/:id", s.requireAuth, s.deleteProject)

	// legacy aliases
	api.Get("/hover-items", s.listProjects)
	api.Get("/hover-items/:id", s.getProject)
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(sctx); err != nil {
			s.logger.Error(sctx, "REST shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.address)

	return s.app.Listen(s.address, fiber.ListenConfig{DisableStartupMessage: true})
}
