package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gumtree-backend/internal/auth"
	"github.com/wichananm65/gumtree-backend/internal/logging"
	"github.com/wichananm65/gumtree-backend/internal/metrics"
)

type Handler struct {
	service *Service
	log     logging.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewHandler(service *Service, log logging.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/admin/login", h.login)
}

// RegisterProtectedRoutes expects r to sit behind the auth middleware.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/admin/me", h.me)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		metrics.Logins.WithLabelValues("invalid").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := h.service.IssueToken(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues("rejected").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		h.log.Error(c.UserContext(), "login failed", "error", err)
		metrics.Logins.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	return c.JSON(fiber.Map{"token": token})
}

func (h *Handler) me(c *fiber.Ctx) error {
	p, err := auth.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(p)
}
