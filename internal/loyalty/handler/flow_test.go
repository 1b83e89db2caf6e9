package handler_test

import (
	"fmt"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/repository/memory"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flow struct {
	t      *testing.T
	app    *fiber.App
	bearer string
}

func newFlow(t *testing.T) *flow {
	verifier := service.NewJWTVerifier("jwt-secret")
	token, err := verifier.Generate("user-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	return &flow{
		t:      t,
		app:    newTestApp(memory.NewRepository(), verifier, testAdminKey),
		bearer: "Bearer " + token,
	}
}

func (f *flow) do(req *http.Request, auth bool) *http.Response {
	f.t.Helper()
	if auth {
		req.Header.Set("Authorization", f.bearer)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(f.t, err)
	return resp
}

func (f *flow) setupCard() dto.CardOutput {
	f.t.Helper()

	req := jsonRequest(http.MethodPost, "/api/v1/admin/companies", dto.CreateCompanyInput{ID: "padaria", Name: "Padaria Central", Pin: "1234"})
	req.Header.Set("X-Admin-Key", testAdminKey)
	resp := f.do(req, false)
	require.Equal(f.t, fiber.StatusCreated, resp.StatusCode)

	resp = f.do(jsonRequest(http.MethodPost, "/api/v1/cards", dto.CreateCardInput{CompanyID: "padaria"}), true)
	require.Equal(f.t, fiber.StatusCreated, resp.StatusCode)

	var card dto.CardOutput
	decodeBody(f.t, resp, &card)
	return card
}

func (f *flow) issue(cardID, action string) dto.TokenOutput {
	f.t.Helper()
	resp := f.do(jsonRequest(http.MethodPost, "/api/v1/tokens", dto.GenerateTokenInput{CardID: cardID, ActionType: action}), true)
	require.Equal(f.t, fiber.StatusCreated, resp.StatusCode)

	var token dto.TokenOutput
	decodeBody(f.t, resp, &token)
	return token
}

func TestTokenFlow(t *testing.T) {
	f := newFlow(t)
	card := f.setupCard()
	assert.Equal(t, "Padaria Central", card.StoreName)

	token := f.issue(card.ID, "add_points")
	assert.Equal(t, 30*time.Second, token.ExpiresAt.Sub(token.CreatedAt))

	t.Run("wrong pin", func(t *testing.T) {
		resp := f.do(jsonRequest(http.MethodPost, "/api/v1/tokens/redeem", dto.RedeemInput{Token: token.Token, StorePin: "9999", Points: 2}), false)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "PIN incorreto", body["error"])
	})

	t.Run("success", func(t *testing.T) {
		resp := f.do(jsonRequest(http.MethodPost, "/api/v1/tokens/redeem", dto.RedeemInput{Token: token.Token, StorePin: "1234", Points: 2}), false)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.RedeemOutput
		decodeBody(t, resp, &out)
		assert.Equal(t, 2, out.Card.Points)
		assert.Equal(t, "points_added", out.Transaction.Type)
		assert.False(t, out.JustCompleted)
	})

	t.Run("already used", func(t *testing.T) {
		resp := f.do(jsonRequest(http.MethodPost, "/api/v1/tokens/redeem", dto.RedeemInput{Token: token.Token, StorePin: "1234", Points: 2}), false)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "QR code já utilizado", body["error"])
	})

	t.Run("unknown token", func(t *testing.T) {
		resp := f.do(jsonRequest(http.MethodPost, "/api/v1/tokens/redeem", dto.RedeemInput{Token: "nope", StorePin: "1234", Points: 2}), false)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("reward on incomplete card", func(t *testing.T) {
		resp := f.do(jsonRequest(http.MethodPost, "/api/v1/tokens", dto.GenerateTokenInput{CardID: card.ID, ActionType: "collect_reward"}), true)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("history", func(t *testing.T) {
		resp := f.do(jsonRequest(http.MethodGet, fmt.Sprintf("/api/v1/cards/%s/transactions", card.ID), nil), true)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var txns []dto.TransactionOutput
		decodeBody(t, resp, &txns)
		require.Len(t, txns, 1)
		assert.Equal(t, 2, txns[0].Points)
	})
}

func TestDirectEntryFlow(t *testing.T) {
	f := newFlow(t)
	card := f.setupCard()
	pointsPath := fmt.Sprintf("/api/v1/cards/%s/points", card.ID)

	resp := f.do(jsonRequest(http.MethodPost, pointsPath, dto.DirectPointsInput{Pin: "12", Points: 1}), true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = f.do(jsonRequest(http.MethodPost, pointsPath, dto.DirectPointsInput{Pin: "1234", Points: 10}), true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.MutationOutput
	decodeBody(t, resp, &out)
	assert.Equal(t, 10, out.Card.Points)
	assert.True(t, out.JustCompleted)

	resp = f.do(jsonRequest(http.MethodPost, fmt.Sprintf("/api/v1/cards/%s/reward", card.ID), dto.DirectRewardInput{Pin: "1234"}), true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &out)
	assert.Equal(t, 0, out.Card.Points)
	assert.Equal(t, "reward_collected", out.Transaction.Type)
}

func TestDirectCorrectionFlow(t *testing.T) {
	f := newFlow(t)
	card := f.setupCard()
	pointsPath := fmt.Sprintf("/api/v1/cards/%s/points", card.ID)
	removePath := pointsPath + "/remove"

	resp := f.do(jsonRequest(http.MethodPost, pointsPath, dto.DirectPointsInput{Pin: "1234", Points: math.MaxInt32 + 1}), true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = f.do(jsonRequest(http.MethodPost, pointsPath, dto.DirectPointsInput{Pin: "1234", Points: 3}), true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.do(jsonRequest(http.MethodPost, removePath, dto.DirectPointsInput{Pin: "1234", Points: 4}), true)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = f.do(jsonRequest(http.MethodPost, removePath, dto.DirectPointsInput{Pin: "1234", Points: 2}), true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.MutationOutput
	decodeBody(t, resp, &out)
	assert.Equal(t, 1, out.Card.Points)
	assert.Equal(t, "points_removed", out.Transaction.Type)
}

func TestCardQR(t *testing.T) {
	f := newFlow(t)
	card := f.setupCard()

	resp := f.do(jsonRequest(http.MethodGet, fmt.Sprintf("/api/v1/cards/%s/qr", card.ID), nil), true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp = f.do(jsonRequest(http.MethodGet, "/api/v1/cards/unknown/qr", nil), true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateCompany_RequiresAdminKey(t *testing.T) {
	f := newFlow(t)

	req := jsonRequest(http.MethodPost, "/api/v1/admin/companies", dto.CreateCompanyInput{Name: "Mercado", Pin: "1234"})
	req.Header.Set("X-Admin-Key", "wrong")
	resp := f.do(req, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
