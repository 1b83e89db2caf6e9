package handler

import (
	"crypto/subtle"
	"strings"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/gofiber/fiber/v2"
)

const (
	userIDLocal    = "userID"
	adminKeyHeader = "X-Admin-Key"
)

// RequireUser authenticates the bearer access token and stores its subject
// as the current user id.
func (h *LoyaltyHandler) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.Message(autherror.ErrUnauthorized)})
		}

		claims, err := h.verifier.VerifyAccessToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.Message(autherror.ErrUnauthorized)})
		}

		c.Locals(userIDLocal, claims.Subject)
		return c.Next()
	}
}

func (h *LoyaltyHandler) RequireAdminKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(adminKeyHeader)
		if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.Message(autherror.ErrUnauthorized)})
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDLocal).(string)
	return userID
}
