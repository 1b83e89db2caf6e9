package handler

import (
	"errors"
	"log/slog"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/service"
	"github.com/gofiber/fiber/v2"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Pins       *service.PinService
	Tokens     *service.TokenService
	Redemption *service.RedemptionService
	Cards      *service.CardService
	Companies  *service.CompanyService
}

type LoyaltyHandler struct {
	pins       *service.PinService
	tokens     *service.TokenService
	redemption *service.RedemptionService
	cards      *service.CardService
	companies  *service.CompanyService
	verifier   service.AccessTokenVerifier
	adminKey   string
	log        *slog.Logger
}

func NewLoyaltyHandler(svc Services, verifier service.AccessTokenVerifier, adminKey string, logger *slog.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		pins:       svc.Pins,
		tokens:     svc.Tokens,
		redemption: svc.Redemption,
		cards:      svc.Cards,
		companies:  svc.Companies,
		verifier:   verifier,
		adminKey:   adminKey,
		log:        logger,
	}
}

// statusFor maps an error kind to its HTTP status. Expired tokens get 410
// so clients can tell them apart from used ones.
func statusFor(err error) int {
	if errors.Is(err, autherror.ErrTokenExpired) {
		return fiber.StatusGone
	}
	switch autherror.KindOf(err) {
	case autherror.KindValidation:
		return fiber.StatusBadRequest
	case autherror.KindNotFound:
		return fiber.StatusNotFound
	case autherror.KindAuth:
		return fiber.StatusUnauthorized
	case autherror.KindState:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *LoyaltyHandler) logIfInternal(c *fiber.Ctx, status int, err error) {
	if status == fiber.StatusInternalServerError {
		h.log.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	}
}

func (h *LoyaltyHandler) respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	h.logIfInternal(c, status, err)
	return c.Status(status).JSON(fiber.Map{"error": autherror.Message(err)})
}

func invalidInput(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": autherror.MsgInvalidInput})
}

func (h *LoyaltyHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
