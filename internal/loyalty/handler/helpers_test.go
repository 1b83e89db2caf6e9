package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/events"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/handler"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAdminKey = "admin-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(repo domain.Repository, verifier service.AccessTokenVerifier, adminKey string) *fiber.App {
	log := discardLogger()
	publisher := events.NewNoopPublisher(log)
	pins := service.NewPinService(repo, log)
	tokens := service.NewTokenService(repo, "hmac-key", log)

	h := handler.NewLoyaltyHandler(handler.Services{
		Pins:       pins,
		Tokens:     tokens,
		Redemption: service.NewRedemptionService(repo, tokens, publisher, log),
		Cards:      service.NewCardService(repo, pins, publisher, log),
		Companies:  service.NewCompanyService(repo, bcrypt.MinCost),
	}, verifier, adminKey, log)

	return handler.NewApp(h, handler.AppConfig{})
}

func hashPin(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func jsonRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
