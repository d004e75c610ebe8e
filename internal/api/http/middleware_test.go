package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/booking-service/internal/observability"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorEnvelope(t *testing.T) {
	app := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("The given data was invalid", map[string]any{
			"booking_date": []string{"The booking date field is required."},
		})
	})

	status, body := doRequest(t, app, "GET", "/boom")
	assert.Equal(t, 422, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "The given data was invalid", body["message"])

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "booking_date")
}

func TestErrorEnvelopeOmitsEmptyErrors(t *testing.T) {
	app := newTestApp(t)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Booking not found")
	})

	status, body := doRequest(t, app, "GET", "/missing")
	assert.Equal(t, 404, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Booking not found", body["message"])
	assert.NotContains(t, body, "errors")
}

func TestPanicRecovery(t *testing.T) {
	app := newTestApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	status, body := doRequest(t, app, "GET", "/panic")
	assert.Equal(t, 500, status)
	assert.Equal(t, false, body["success"])
}

func TestSuccessPassesThrough(t *testing.T) {
	app := newTestApp(t)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})

	status, body := doRequest(t, app, "GET", "/ok")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
}
