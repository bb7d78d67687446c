package product

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gumtree-backend/internal/logging"
)

func makeApp(repo Repository) *fiber.App {
	h := NewHandler(NewService(repo), logging.Discard())
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
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestProductRoutes_Registered(t *testing.T) {
	app := makeApp(NewInMemoryRepository(nil))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /api/products",
		"GET /api/products/:id",
		"GET /api/admin/products/:id",
		"GET /api/admin/products",
		"POST /api/admin/products",
		"PUT /api/admin/products/:id",
		"DELETE /api/admin/products/:id",
	} {
		if !routes[want] {
			t.Fatalf("expected route %q to be registered", want)
		}
	}
}

func TestCreateAndFilter(t *testing.T) {
	app := makeApp(NewInMemoryRepository(nil))

	status, body := do(t, app, "POST", "/api/admin/products",
		`{"name":"BWP 18mm","category":"block-board","thicknesses":"12, 18, 25","imageUrl":"http://x/p.png"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, `"thicknesses":["12","18","25"]`) {
		t.Fatalf("thicknesses not normalized: %s", body)
	}

	do(t, app, "POST", "/api/admin/products", `{"name":"MR 6mm","category":"mr"}`)

	status, body = do(t, app, "GET", "/api/products?category=block-board", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if strings.Count(body, `"id"`) != 1 || strings.Contains(body, "MR 6mm") {
		t.Fatalf("filter leaked other products: %s", body)
	}

	status, body = do(t, app, "POST", "/api/admin/products", `{"category":"mr"}`)
	if status != fiber.StatusBadRequest || !strings.Contains(body, `"error"`) {
		t.Fatalf("expected 400 {error}, got %d %s", status, body)
	}
}

func TestUpdateRoute(t *testing.T) {
	app := makeApp(NewInMemoryRepository(nil))
	do(t, app, "POST", "/api/admin/products", `{"name":"BWP 18mm","category":"block-board","imageUrl":"http://x/p.png"}`)

	status, body := do(t, app, "PUT", "/api/admin/products/1", `{"description":"x"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	for _, want := range []string{`"description":"x"`, `"name":"BWP 18mm"`, `"category":"block-board"`, `"imageUrl":"http://x/p.png"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}

	status, body = do(t, app, "PUT", "/api/admin/products/99", `{"description":"x"}`)
	if status != fiber.StatusNotFound || body != `{"error":"Product not found"}` {
		t.Fatalf("expected 404, got %d %s", status, body)
	}

	status, _ = do(t, app, "PUT", "/api/admin/products/9999", `{"name":""}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown id with blank name, got %d", status)
	}

	status, _ = do(t, app, "PUT", "/api/admin/products/1", `{"name":""}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", status)
	}
}

func TestDeleteRoute_Idempotent(t *testing.T) {
	app := makeApp(NewInMemoryRepository([]Product{{ID: 3, Name: "A", Category: "a"}}))

	for _, path := range []string{"/api/admin/products/3", "/api/admin/products/3", "/api/admin/products/404"} {
		status, body := do(t, app, "DELETE", path, "")
		if status != fiber.StatusOK || body != `{"success":true}` {
			t.Fatalf("DELETE %s: %d %s", path, status, body)
		}
	}
}

func TestGetProductRoute(t *testing.T) {
	app := makeApp(NewInMemoryRepository([]Product{{ID: 5, Name: "MR 12mm", Category: "mr"}}))

	status, body := do(t, app, "GET", "/api/products/5", "")
	if status != fiber.StatusOK || !strings.Contains(body, `"name":"MR 12mm"`) {
		t.Fatalf("expected product, got %d %s", status, body)
	}

	status, body = do(t, app, "GET", "/api/products/6", "")
	if status != fiber.StatusNotFound || body != `{"error":"Product not found"}` {
		t.Fatalf("expected 404, got %d %s", status, body)
	}

	status, _ = do(t, app, "GET", "/api/products/abc", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", status)
	}
}
