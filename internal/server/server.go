// Package server assembles the fiber application: shared middleware, the
// public routes and the token-gated admin routes.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wichananm65/gumtree-backend/internal/admin"
	"github.com/wichananm65/gumtree-backend/internal/auth"
	"github.com/wichananm65/gumtree-backend/internal/category"
	"github.com/wichananm65/gumtree-backend/internal/chat"
	"github.com/wichananm65/gumtree-backend/internal/contact"
	"github.com/wichananm65/gumtree-backend/internal/logging"
	"github.com/wichananm65/gumtree-backend/internal/metrics"
	"github.com/wichananm65/gumtree-backend/internal/product"
	"github.com/wichananm65/gumtree-backend/internal/upload"
)

// Deps are the handlers and settings the server is built from. Handlers left
// nil are not mounted.
type Deps struct {
	Issuer *auth.Issuer

	Admin      *admin.Handler
	Categories *category.Handler
	Products   *product.Handler
	Uploads    *upload.Handler
	Contact    *contact.Handler
	Chat       *chat.Handler

	// UploadDir is served under upload.LocalPrefix when non-empty.
	UploadDir string
	// BodyLimit caps request bodies in bytes. Zero picks room for one
	// default-sized upload plus multipart overhead.
	BodyLimit int

	Log logging.Logger
}

func New(d Deps) *fiber.App {
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	if d.BodyLimit <= 0 {
		d.BodyLimit = upload.DefaultMaxBytes + 1<<20
	}

	app := fiber.New(fiber.Config{
		AppName:               "gumtree-api",
		BodyLimit:             d.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestLogger(d.Log))
	app.Use(metrics.Middleware())
	setupCORS(app)
	app.Use(noStore)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "Gumtree API running"})
	})
	app.Get("/metrics", metrics.Handler())
	if d.UploadDir != "" {
		app.Static(upload.LocalPrefix, d.UploadDir)
	}

	// Public routes must be registered before the gated group: the group's
	// middleware matches every path under /api.
	if d.Admin != nil {
		d.Admin.RegisterPublicRoutes(app)
	}
	if d.Categories != nil {
		d.Categories.RegisterPublicRoutes(app)
	}
	if d.Products != nil {
		d.Products.RegisterPublicRoutes(app)
	}
	if d.Contact != nil {
		d.Contact.RegisterPublicRoutes(app)
	}
	if d.Chat != nil {
		d.Chat.RegisterPublicRoutes(app)
	}

	protected := app.Group("/api", d.Issuer.Middleware())
	if d.Admin != nil {
		d.Admin.RegisterProtectedRoutes(protected)
	}
	if d.Categories != nil {
		d.Categories.RegisterProtectedRoutes(protected)
	}
	if d.Products != nil {
		d.Products.RegisterProtectedRoutes(protected)
	}
	if d.Uploads != nil {
		d.Uploads.RegisterProtectedRoutes(protected)
	}
	if d.Chat != nil {
		d.Chat.RegisterProtectedRoutes(protected)
	}

	return app
}

func errorHandler(log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
