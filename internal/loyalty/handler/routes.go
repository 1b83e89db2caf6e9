package handler

import (
	"errors"
	"os"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppConfig struct {
	AllowOrigins string
	RequestLog   bool
}

// NewApp builds the fiber application with the common middleware stack and
// all loyalty routes mounted.
func NewApp(h *LoyaltyHandler, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "fidelize",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	if cfg.RequestLog {
		app.Use(logger.New(logger.Config{Output: os.Stdout}))
	}

	origins := cfg.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	RegisterRoutes(app, h)
	return app
}

func RegisterRoutes(app *fiber.App, h *LoyaltyHandler) {
	app.Get("/healthz", h.Health)
	app.Get("/metrics", metrics.Handler())

	app.Post("/api/v1/pin/validate", h.ValidatePin)
	app.Post("/api/v1/tokens/redeem", h.RedeemToken)

	// User endpoints
	auth := h.RequireUser()
	app.Post("/api/v1/tokens", auth, h.IssueToken)
	app.Post("/api/v1/cards", auth, h.CreateCard)
	app.Get("/api/v1/cards", auth, h.ListCards)
	app.Get("/api/v1/cards/:id", auth, h.GetCard)
	app.Get("/api/v1/cards/:id/transactions", auth, h.ListTransactions)
	app.Get("/api/v1/cards/:id/qr", auth, h.CardQR)
	app.Post("/api/v1/cards/:id/points", auth, h.AddPoints)
	app.Post("/api/v1/cards/:id/points/remove", auth, h.RemovePoints)
	app.Post("/api/v1/cards/:id/reward", auth, h.CollectReward)

	// Admin endpoints, mounted only when a key is configured
	if h.adminKey != "" {
		app.Post("/api/v1/admin/companies", h.RequireAdminKey(), h.CreateCompany)
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": autherror.MsgInternal})
}
