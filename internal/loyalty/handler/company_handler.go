package handler

import (
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/gofiber/fiber/v2"
)

func (h *LoyaltyHandler) CreateCompany(c *fiber.Ctx) error {
	var input dto.CreateCompanyInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	company, err := h.companies.CreateCompany(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(company)
}
