package apierrorsfiber

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apierrors/apierrors"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	f, err := apierrors.New(apierrors.DefaultConfig())
	require.NoError(t, err)

	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(f)})
}

func do(t *testing.T, app *fiber.App, method, path string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func TestErrorHandler(t *testing.T) {
	app := newApp(t)
	app.Get("/items", func(c *fiber.Ctx) error {
		return apierrors.ValidationError(map[string]any{"name": "This field is required."})
	})

	resp, body := do(t, app, http.MethodGet, "/items")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Validation error.", body["title"])
	assert.Equal(t, []any{
		map[string]any{"name": "name", "reason": []any{"This field is required."}},
	}, body["invalid_params"])
}

func TestConvertFiberErrors(t *testing.T) {
	app := newApp(t)
	app.Get("/only-get", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	t.Run("not found", func(t *testing.T) {
		resp, body := do(t, app, http.MethodGet, "/nowhere")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not found.", body["title"])
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, body := do(t, app, http.MethodPost, "/only-get")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "Method not allowed.", body["title"])
		assert.Equal(t, []any{`Method "POST" not allowed.`}, body["detail"])
	})
}

func TestConvertGenericFiberError(t *testing.T) {
	app := newApp(t)
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(http.StatusTeapot, "I'm a teapot.")
	})

	resp, body := do(t, app, http.MethodGet, "/teapot")

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "I'm a teapot.", body["title"])
}

func TestErrorHandlerUnknownError(t *testing.T) {
	app := newApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	resp, body := do(t, app, http.MethodGet, "/boom")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Server error.", body["title"])
}
