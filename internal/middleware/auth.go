package middleware

import (
	"strings"

	"vidtube/internal/auth"
	"vidtube/internal/cache"
	"vidtube/internal/config"

	"github.com/gofiber/fiber/v2"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// Revoked tokens (logged-out JTIs) are rejected via the Redis blacklist.
func AuthRequired(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	userID, jti, err := auth.ParseToken(cfg.JWTSecret, tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	if rdb := cache.GetClient(); rdb != nil && jti != "" {
		if n, err := rdb.Exists(c.UserContext(), cache.BlacklistKey(jti)).Result(); err == nil && n > 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has been revoked",
			})
		}
	}

	c.Locals("userID", userID)
	c.Locals("jti", jti)

	return c.Next()
}

// OptionalAuth resolves the caller's identity when a valid token is present
// and continues anonymously otherwise. Listing and detail routes use it so
// visibility and per-caller fields can reflect the viewer.
func OptionalAuth(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Next()
	}

	userID, jti, err := auth.ParseToken(cfg.JWTSecret, tokenString)
	if err != nil {
		return c.Next()
	}

	if rdb := cache.GetClient(); rdb != nil && jti != "" {
		if n, err := rdb.Exists(c.UserContext(), cache.BlacklistKey(jti)).Result(); err == nil && n > 0 {
			return c.Next()
		}
	}

	c.Locals("userID", userID)
	c.Locals("jti", jti)

	return c.Next()
}
