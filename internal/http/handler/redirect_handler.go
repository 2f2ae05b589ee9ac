package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/LinkDeck/internal/app/repository"
	"github.com/sifan077/LinkDeck/internal/app/service"
	infraprom "github.com/sifan077/LinkDeck/internal/infra/prometheus"
	"go.uber.org/zap"
)

// RedirectDeps groups dependencies required by the redirect handler.
type RedirectDeps struct {
	Logger   *zap.Logger
	Resolver service.ResolveService
	Visits   *service.VisitPublisher
}

// RedirectHandler serves the public short-link resolution endpoint.
type RedirectHandler struct {
	logger   *zap.Logger
	resolver service.ResolveService
	visits   *service.VisitPublisher
}

// NewRedirectHandler creates a redirect handler with the provided dependencies.
func NewRedirectHandler(deps RedirectDeps) *RedirectHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedirectHandler{
		logger:   logger,
		resolver: deps.Resolver,
		visits:   deps.Visits,
	}
}

// Register wires redirect routes onto the provided router. The catch-all
// /:id route must be registered after every fixed route.
func (h *RedirectHandler) Register(router fiber.Router) {
	router.Get("/", h.Health)
	router.Get("/health", h.Health)
	router.Get("/:id", h.Resolve)
}

// Health is a simple root endpoint so we know the service is running.
func (h *RedirectHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "LinkDeck",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Resolve handles GET /:id, counting the visit and redirecting to the stored
// destination. The destination is passed through as stored.
func (h *RedirectHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing link id",
		})
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	destination, err := h.resolver.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			infraprom.Resolutions.WithLabelValues(infraprom.OutcomeNotFound).Inc()
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "link not found",
			})
		}
		infraprom.Resolutions.WithLabelValues(infraprom.OutcomeError).Inc()
		h.logger.Error("failed to resolve link", zap.Error(err), zap.String("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	infraprom.Resolutions.WithLabelValues(infraprom.OutcomeResolved).Inc()

	if h.visits != nil {
		// Copy request values out before leaving the handler; the fiber
		// context is recycled once the response is written.
		ip, userAgent := c.IP(), c.Get("User-Agent")
		go h.publishVisit(id, ip, userAgent)
	}

	h.logger.Debug("redirecting short link", zap.String("id", id), zap.String("target", destination))
	return c.Redirect(destination, fiber.StatusFound)
}

func (h *RedirectHandler) publishVisit(id, ip, userAgent string) {
	if err := h.visits.Publish(id, ip, userAgent); err != nil {
		h.logger.Error("failed to publish visit event", zap.Error(err), zap.String("id", id))
	}
}
