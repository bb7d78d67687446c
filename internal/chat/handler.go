package chat

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gumtree-backend/internal/logging"
)

type Handler struct {
	service *Service
	log     logging.Logger
}

type sendRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

func NewHandler(service *Service, log logging.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/chat", h.send)
}

// RegisterProtectedRoutes expects r to be the auth-gated "/api" group.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/admin/chat/:sessionId", h.history)
}

func (h *Handler) send(c *fiber.Ctx) error {
	req := new(sendRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrValidation.Error()})
	}

	reply, err := h.service.Send(c.UserContext(), req.SessionID, req.Text)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error(c.UserContext(), "chat turn failed", "session", req.SessionID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"reply": reply})
}

func (h *Handler) history(c *fiber.Ctx) error {
	msgs, err := h.service.History(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(msgs)
}
