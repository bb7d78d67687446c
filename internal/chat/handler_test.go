package chat

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gumtree-backend/internal/logging"
)

func makeApp() *fiber.App {
	h := NewHandler(NewService(NewInMemoryRepository(), nil), logging.Discard())
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app.Group("/api"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestChatRoute(t *testing.T) {
	app := makeApp()

	status, body := do(t, app, "POST", "/api/chat", `{"sessionId":"abc","text":"hello"}`)
	if status != fiber.StatusOK || body != `{"reply":"`+DefaultReply+`"}` {
		t.Fatalf("unexpected reply %d %s", status, body)
	}

	status, body = do(t, app, "GET", "/api/admin/chat/abc", "")
	if status != fiber.StatusOK || strings.Count(body, `"role"`) != 2 {
		t.Fatalf("expected two stored turns, got %d %s", status, body)
	}

	status, body = do(t, app, "POST", "/api/chat", `{"text":"hello"}`)
	if status != fiber.StatusBadRequest || body != `{"error":"sessionId and text are required"}` {
		t.Fatalf("expected 400, got %d %s", status, body)
	}
}
