package category

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gumtree-backend/internal/logging"
)

type Handler struct {
	service *Service
	log     logging.Logger
}

type createRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func NewHandler(s *Service, log logging.Logger) *Handler {
	return &Handler{service: s, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/categories", h.getCategories)
}

// RegisterProtectedRoutes expects r to be the auth-gated "/api" group.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/admin/categories", h.getCategories)
	r.Post("/admin/categories", h.createCategory)
	r.Delete("/admin/categories/:id", h.deleteCategory)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.service.Create(c.UserContext(), payload.Name, payload.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrDuplicateSlug):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category already exists"})
		default:
			h.log.Error(c.UserContext(), "create category failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	h.log.Info(c.UserContext(), "category created", "id", created.ID, "slug", created.Slug)
	return c.JSON(created)
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}
