package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/LinkDeck/internal/app/model"
	"github.com/sifan077/LinkDeck/internal/app/repository"
	"github.com/sifan077/LinkDeck/internal/app/service"
	"go.uber.org/zap"
)

// APIDeps groups dependencies required by API handlers.
type APIDeps struct {
	Logger     *zap.Logger
	Links      service.LinkService
	Categories service.CategoryService
	Directory  service.DirectoryService
}

// APIHandler implements the directory management API endpoints.
type APIHandler struct {
	logger     *zap.Logger
	links      service.LinkService
	categories service.CategoryService
	directory  service.DirectoryService
}

// NewAPIHandler creates an API handler with the provided dependencies.
func NewAPIHandler(deps APIDeps) *APIHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		logger:     logger,
		links:      deps.Links,
		categories: deps.Categories,
		directory:  deps.Directory,
	}
}

// Register wires API routes onto the provided router.
func (h *APIHandler) Register(router fiber.Router) {
	api := router.Group("/api")
	{
		links := api.Group("/links")
		{
			links.Get("/", h.ListLinks)
			links.Post("/", h.CreateLink)
			links.Get("/:id", h.GetLink)
			links.Put("/:id", h.UpdateLink)
			links.Delete("/:id", h.DeleteLink)
		}

		categories := api.Group("/categories")
		{
			categories.Get("/", h.ListCategories)
			categories.Post("/", h.CreateCategory)
			categories.Delete("/:id", h.DeleteCategory)
		}

		api.Get("/stats", h.Stats)
	}
}

// LinkRequest is the request body shared by create and update; updates replace
// all caller-settable fields.
type LinkRequest struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

// LinkResponse is the JSON shape of a link, with its category resolved when set.
type LinkResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	URL         string            `json:"url"`
	Description *string           `json:"description"`
	CategoryID  *string           `json:"categoryId"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Clicks      int64             `json:"clicks"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CategoryResponse is the JSON shape of a category.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryWithCountResponse adds the referencing-link count to a category.
type CategoryWithCountResponse struct {
	CategoryResponse
	LinkCount int64 `json:"linkCount"`
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func linkResponse(link *model.Link) LinkResponse {
	resp := LinkResponse{
		ID:          link.ID,
		Title:       link.Title,
		URL:         link.URL,
		Description: link.Description,
		CategoryID:  link.CategoryID,
		Clicks:      link.Clicks,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}
	if link.Category != nil {
		resp.Category = &CategoryResponse{
			ID:        link.Category.ID,
			Name:      link.Category.Name,
			CreatedAt: link.Category.CreatedAt,
		}
	}
	return resp
}

// ListLinks handles GET /api/links
func (h *APIHandler) ListLinks(c *fiber.Ctx) error {
	query := service.LinkQuery{
		Text:       c.Query("query"),
		CategoryID: c.Query("categoryId"),
	}

	links, err := h.directory.ListLinks(h.ctx(c), query)
	if err != nil {
		return h.fail(c, err, "failed to list links")
	}

	response := make([]LinkResponse, len(links))
	for i := range links {
		response[i] = linkResponse(&links[i])
	}
	return c.JSON(response)
}

// CreateLink handles POST /api/links
func (h *APIHandler) CreateLink(c *fiber.Ctx) error {
	var req LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	link, err := h.links.CreateLink(h.ctx(c), service.LinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return h.fail(c, err, "failed to create link")
	}

	return c.Status(fiber.StatusCreated).JSON(linkResponse(link))
}

// GetLink handles GET /api/links/:id
func (h *APIHandler) GetLink(c *fiber.Ctx) error {
	link, err := h.links.GetLink(h.ctx(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "failed to get link")
	}
	return c.JSON(linkResponse(link))
}

// UpdateLink handles PUT /api/links/:id
func (h *APIHandler) UpdateLink(c *fiber.Ctx) error {
	var req LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	link, err := h.links.UpdateLink(h.ctx(c), c.Params("id"), service.LinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return h.fail(c, err, "failed to update link")
	}
	return c.JSON(linkResponse(link))
}

// DeleteLink handles DELETE /api/links/:id
func (h *APIHandler) DeleteLink(c *fiber.Ctx) error {
	if err := h.links.DeleteLink(h.ctx(c), c.Params("id")); err != nil {
		return h.fail(c, err, "failed to delete link")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ListCategories handles GET /api/categories
func (h *APIHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.directory.ListCategories(h.ctx(c))
	if err != nil {
		return h.fail(c, err, "failed to list categories")
	}

	response := make([]CategoryWithCountResponse, len(categories))
	for i, category := range categories {
		response[i] = CategoryWithCountResponse{
			CategoryResponse: CategoryResponse{
				ID:        category.ID,
				Name:      category.Name,
				CreatedAt: category.CreatedAt,
			},
			LinkCount: category.LinkCount,
		}
	}
	return c.JSON(response)
}

// CreateCategory handles POST /api/categories
func (h *APIHandler) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	category, err := h.categories.CreateCategory(h.ctx(c), req.Name)
	if err != nil {
		return h.fail(c, err, "failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	})
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *APIHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.DeleteCategory(h.ctx(c), c.Params("id")); err != nil {
		return h.fail(c, err, "failed to delete category")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Stats handles GET /api/stats
func (h *APIHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.directory.Stats(h.ctx(c))
	if err != nil {
		return h.fail(c, err, "failed to collect stats")
	}
	return c.JSON(stats)
}

func (h *APIHandler) ctx(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// fail maps the service error taxonomy onto HTTP statuses: validation errors
// are 400, missing records are 404, everything else is a 500 store failure.
func (h *APIHandler) fail(c *fiber.Ctx, err error, msg string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Error(),
		})
	case errors.Is(err, repository.ErrLinkNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "link not found",
		})
	case errors.Is(err, repository.ErrCategoryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "category not found",
		})
	default:
		h.logger.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msg,
		})
	}
}
