package upload

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gumtree-backend/internal/logging"
)

type Handler struct {
	gateway *Gateway
	log     logging.Logger
}

func NewHandler(gateway *Gateway, log logging.Logger) *Handler {
	return &Handler{gateway: gateway, log: log}
}

// RegisterProtectedRoutes expects r to be the auth-gated "/api" group.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/upload", h.upload)
}

func (h *Handler) upload(c *fiber.Ctx) error {
	var file *File
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		file = &File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        data,
		}
	}

	url, err := h.gateway.Upload(c.UserContext(), file)
	switch {
	case errors.Is(err, ErrNoFile):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	case errors.Is(err, ErrTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		h.log.Error(c.UserContext(), "upload failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.log.Info(c.UserContext(), "asset uploaded", "url", url)
	return c.JSON(fiber.Map{"url": url})
}
