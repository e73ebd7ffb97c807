package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studyshare-api/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(status *int) *fiber.App {
	app := fiber.New()
	guard := NewIdempotencyGuard(cache.NewMemoryCache(time.Minute), time.Minute)
	app.Post("/notes", guard.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(*status)
	})
	return app
}

func post(t *testing.T, app *fiber.App, key string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/notes", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestIdempotencyGuardRejectsReplay(t *testing.T) {
	status := fiber.StatusCreated
	app := newGuardedApp(&status)

	assert.Equal(t, fiber.StatusCreated, post(t, app, "abc"))
	assert.Equal(t, fiber.StatusConflict, post(t, app, "abc"))
	assert.Equal(t, fiber.StatusCreated, post(t, app, "def"))
}

func TestIdempotencyGuardWithoutHeader(t *testing.T) {
	status := fiber.StatusCreated
	app := newGuardedApp(&status)

	assert.Equal(t, fiber.StatusCreated, post(t, app, ""))
	assert.Equal(t, fiber.StatusCreated, post(t, app, ""))
}

func TestIdempotencyGuardReleasesKeyOnFailure(t *testing.T) {
	status := fiber.StatusUnprocessableEntity
	app := newGuardedApp(&status)

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(t, app, "retry-me"))

	status = fiber.StatusCreated
	assert.Equal(t, fiber.StatusCreated, post(t, app, "retry-me"))
	assert.Equal(t, fiber.StatusConflict, post(t, app, "retry-me"))
}
