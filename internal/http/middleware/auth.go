package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDLocalKey is the key used to store the authenticated user's id in
// Fiber's context locals.
const UserIDLocalKey = "user_id"

// Auth verifies the Bearer token on every request and stores the token
// subject in context locals as the caller's user id. Token issuance and
// session management live outside this application; only HMAC-signed tokens
// from the configured secret are accepted. Requests without a valid token
// are rejected with 401 before any service call.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return writeUnauthorized(c, "missing authorization header")
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return writeUnauthorized(c, "invalid authorization scheme")
		}

		token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return writeUnauthorized(c, "invalid or expired token")
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return writeUnauthorized(c, "token has no subject")
		}

		c.Locals(UserIDLocalKey, sub)
		return c.Next()
	}
}

// UserID extracts the authenticated user's id stored by Auth.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDLocalKey).(string); ok {
		return v
	}
	return ""
}

func writeUnauthorized(c *fiber.Ctx, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"request_id": rid,
		"error": fiber.Map{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
