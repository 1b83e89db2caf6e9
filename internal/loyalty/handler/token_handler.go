package handler

import (
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/gofiber/fiber/v2"
)

func (h *LoyaltyHandler) IssueToken(c *fiber.Ctx) error {
	var input dto.GenerateTokenInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	token, err := h.tokens.GenerateToken(c.UserContext(), currentUser(c), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(token)
}

// RedeemToken is called by the store terminal. The store PIN in the body is
// the only credential.
func (h *LoyaltyHandler) RedeemToken(c *fiber.Ctx) error {
	var input dto.RedeemInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	input.IPAddress = c.IP()

	out, err := h.redemption.Redeem(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}
