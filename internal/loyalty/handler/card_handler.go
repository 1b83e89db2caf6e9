package handler

import (
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/qrsession"
	"github.com/gofiber/fiber/v2"
)

const cardQRSize = 256

func (h *LoyaltyHandler) CreateCard(c *fiber.Ctx) error {
	var input dto.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	card, err := h.cards.CreateCard(c.UserContext(), currentUser(c), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(card)
}

func (h *LoyaltyHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.cards.ListCards(c.UserContext(), currentUser(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cards)
}

func (h *LoyaltyHandler) GetCard(c *fiber.Ctx) error {
	card, err := h.cards.GetCard(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(card)
}

func (h *LoyaltyHandler) ListTransactions(c *fiber.Ctx) error {
	txns, err := h.cards.ListTransactions(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(txns)
}

// CardQR renders the card's static identification QR code as PNG.
func (h *LoyaltyHandler) CardQR(c *fiber.Ctx) error {
	card, err := h.cards.GetCard(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	payload, err := qrsession.EncodeCardPayload(card.ID, card.CompanyID)
	if err != nil {
		return h.respondError(c, err)
	}
	png, err := qrsession.RenderPNG(payload, cardQRSize)
	if err != nil {
		return h.respondError(c, err)
	}

	c.Type("png")
	return c.Status(fiber.StatusOK).Send(png)
}

func (h *LoyaltyHandler) AddPoints(c *fiber.Ctx) error {
	var input dto.DirectPointsInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	out, err := h.cards.AddPointsWithPin(c.UserContext(), currentUser(c), c.Params("id"), input, c.IP())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *LoyaltyHandler) RemovePoints(c *fiber.Ctx) error {
	var input dto.DirectPointsInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	out, err := h.cards.RemovePointsWithPin(c.UserContext(), currentUser(c), c.Params("id"), input, c.IP())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *LoyaltyHandler) CollectReward(c *fiber.Ctx) error {
	var input dto.DirectRewardInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}

	out, err := h.cards.CollectRewardWithPin(c.UserContext(), currentUser(c), c.Params("id"), input, c.IP())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
