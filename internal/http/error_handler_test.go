package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buycycle/internal/http/handlers"
)

func TestErrorHandler_NoInternalLeakage(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Use(recover.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("secret panic")
	})

	for _, path := range []string{"/err", "/panic"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"internal server error"}`, string(body))
		assert.NotContains(t, string(body), "secret")
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoreFailure_IsGeneric500(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.db.Close())

	lines := captureLogs(t, func() {
		status, body := ta.do(t, http.MethodGet, "/categories", "", nil)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{"error":"internal server error"}`, string(body))
	})
	e := findAction(lines, "server.error")
	require.NotNil(t, e)
	assert.Equal(t, "error", e.Level)

	// role lookups hit the store too; a failure there is not a 403
	status, _ := ta.as(t, "bob@x.com", http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
}
