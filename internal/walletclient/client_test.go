package walletclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, register func(app *fiber.App)) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	register(app)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestIssueToken(t *testing.T) {
	var gotAuth string
	url := startServer(t, func(app *fiber.App) {
		app.Post("/api/v1/tokens", func(c *fiber.Ctx) error {
			gotAuth = c.Get(fiber.HeaderAuthorization)
			var in dto.GenerateTokenInput
			if err := c.BodyParser(&in); err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(dto.TokenOutput{
				ID:         "tok-1",
				CardID:     in.CardID,
				Token:      "raw",
				ActionType: in.ActionType,
			})
		})
	})

	out, err := New(url+"/", "jwt-123").IssueToken(context.Background(), "card-1", "add_points")

	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-123", gotAuth)
	assert.Equal(t, "card-1", out.CardID)
	assert.Equal(t, "add_points", out.ActionType)
	assert.Equal(t, "raw", out.Token)
}

func TestRedeem(t *testing.T) {
	url := startServer(t, func(app *fiber.App) {
		app.Post("/api/v1/tokens/redeem", func(c *fiber.Ctx) error {
			var in dto.RedeemInput
			if err := c.BodyParser(&in); err != nil {
				return err
			}
			if in.StorePin != "1234" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "PIN incorreto"})
			}
			return c.JSON(dto.RedeemOutput{
				Card:          dto.CardOutput{ID: "card-1", Points: 10},
				JustCompleted: true,
			})
		})
	})
	client := New(url, "")

	t.Run("success", func(t *testing.T) {
		out, err := client.Redeem(context.Background(), dto.RedeemInput{Token: "raw", StorePin: "1234", Points: 2})
		require.NoError(t, err)
		assert.Equal(t, 10, out.Card.Points)
		assert.True(t, out.JustCompleted)
	})

	t.Run("api error carries status and message", func(t *testing.T) {
		_, err := client.Redeem(context.Background(), dto.RedeemInput{Token: "raw", StorePin: "0000"})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, fiber.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "PIN incorreto", apiErr.Message)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		cancel()
		_, err := client.Redeem(ctx, dto.RedeemInput{Token: "raw", StorePin: "1234"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIssueToken_CancelDuringRequest(t *testing.T) {
	release := make(chan struct{})
	url := startServer(t, func(app *fiber.App) {
		app.Post("/api/v1/tokens", func(c *fiber.Ctx) error {
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
			return c.SendStatus(fiber.StatusCreated)
		})
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := New(url, "jwt-123").IssueToken(ctx, "card-1", "add_points")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
