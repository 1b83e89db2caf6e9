package handler

import (
	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/gofiber/fiber/v2"
)

// ValidatePin answers {valid, message} on success and {valid:false, error}
// on every failure.
func (h *LoyaltyHandler) ValidatePin(c *fiber.Ctx) error {
	var input dto.PinValidationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.PinValidationOutput{Error: autherror.MsgInvalidInput})
	}
	input.IPAddress = c.IP()

	out, err := h.pins.ValidatePin(c.UserContext(), input)
	if err != nil {
		status := statusFor(err)
		h.logIfInternal(c, status, err)
		return c.Status(status).JSON(dto.PinValidationOutput{Error: autherror.Message(err)})
	}

	return c.Status(fiber.StatusOK).JSON(out)
}
