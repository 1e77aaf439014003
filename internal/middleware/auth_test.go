package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/auth"
	"vidtube/internal/cache"
	"vidtube/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "middleware-test-secret-0123456789"

func newAuthApp(t *testing.T, handler fiber.Handler) *fiber.App {
	t.Helper()
	InitMiddleware(&config.Config{JWTSecret: testJWTSecret})
	app := fiber.New()
	app.Get("/protected", handler, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": userID})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func TestAuthRequired(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		app := newAuthApp(t, AuthRequired)
		resp, body := doRequest(t, app, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Authorization header required")
	})

	t.Run("malformed header", func(t *testing.T) {
		app := newAuthApp(t, AuthRequired)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		app := newAuthApp(t, AuthRequired)
		resp, body := doRequest(t, app, "not-a-jwt")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Invalid or expired token")
	})

	t.Run("valid token resolves the caller", func(t *testing.T) {
		app := newAuthApp(t, AuthRequired)
		token, _, err := auth.GenerateAccessToken(testJWTSecret, 42)
		require.NoError(t, err)
		resp, body := doRequest(t, app, token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"user_id":42`)
	})

	t.Run("blacklisted token is rejected", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		cache.SetClient(client)
		t.Cleanup(func() {
			cache.SetClient(nil)
			client.Close()
		})

		token, jti, err := auth.GenerateAccessToken(testJWTSecret, 42)
		require.NoError(t, err)
		require.NoError(t, mr.Set(cache.BlacklistKey(jti), "1"))
		mr.SetTTL(cache.BlacklistKey(jti), time.Hour)

		app := newAuthApp(t, AuthRequired)
		resp, body := doRequest(t, app, token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Token has been revoked")
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("no header continues anonymously", func(t *testing.T) {
		app := newAuthApp(t, OptionalAuth)
		resp, body := doRequest(t, app, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"user_id":0`)
	})

	t.Run("bad token continues anonymously", func(t *testing.T) {
		app := newAuthApp(t, OptionalAuth)
		resp, body := doRequest(t, app, "garbage")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"user_id":0`)
	})

	t.Run("valid token resolves the caller", func(t *testing.T) {
		app := newAuthApp(t, OptionalAuth)
		token, _, err := auth.GenerateAccessToken(testJWTSecret, 7)
		require.NoError(t, err)
		resp, body := doRequest(t, app, token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"user_id":7`)
	})

	t.Run("blacklisted token falls back to anonymous", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		cache.SetClient(client)
		t.Cleanup(func() {
			cache.SetClient(nil)
			client.Close()
		})

		token, jti, err := auth.GenerateAccessToken(testJWTSecret, 7)
		require.NoError(t, err)
		require.NoError(t, mr.Set(cache.BlacklistKey(jti), "1"))

		app := newAuthApp(t, OptionalAuth)
		resp, body := doRequest(t, app, token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"user_id":0`)
	})
}
