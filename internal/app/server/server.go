package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/sifan077/LinkDeck/internal/app/service"
	inthttp "github.com/sifan077/LinkDeck/internal/http/handler"
	"github.com/sifan077/LinkDeck/internal/http/middleware"
	"go.uber.org/zap"
)

// Dependencies bundles everything the HTTP server needs.
type Dependencies struct {
	Logger     *zap.Logger
	Postgres   *pgxpool.Pool
	Redis      *redis.Client
	NATS       *nats.Conn
	JetStream  nats.JetStreamContext
	Links      service.LinkService
	Categories service.CategoryService
	Directory  service.DirectoryService
	Resolver   service.ResolveService
	Visits     *service.VisitPublisher
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New()

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.deps.Logger))
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use(middleware.CORS())

	apiHandler := inthttp.NewAPIHandler(inthttp.APIDeps{
		Logger:     s.deps.Logger,
		Links:      s.deps.Links,
		Categories: s.deps.Categories,
		Directory:  s.deps.Directory,
	})
	apiHandler.Register(s.app)

	// Registered last so /:id does not shadow the API routes.
	redirectHandler := inthttp.NewRedirectHandler(inthttp.RedirectDeps{
		Logger:   s.deps.Logger,
		Resolver: s.deps.Resolver,
		Visits:   s.deps.Visits,
	})
	redirectHandler.Register(s.app)
}
