package contact

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gumtree-backend/internal/logging"
)

type Handler struct {
	repo Repository
	log  logging.Logger
}

func NewHandler(repo Repository, log logging.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/contact", h.submit)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	var m Message
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrValidation.Error()})
	}
	m.ID = 0

	if err := m.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := h.repo.Create(c.UserContext(), m)
	if err != nil {
		h.log.Error(c.UserContext(), "contact message not saved", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true, "id": saved.ID})
}
