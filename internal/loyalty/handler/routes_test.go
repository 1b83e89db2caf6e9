package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/service"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterRoutes verifies that every route is mounted.
func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := newTestApp(mocks.NewMockRepository(ctrl), mocks.NewMockAccessTokenVerifier(ctrl), testAdminKey)

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/healthz"},
		{http.MethodGet, "/metrics"},
		{http.MethodPost, "/api/v1/pin/validate"},
		{http.MethodPost, "/api/v1/tokens/redeem"},
		{http.MethodPost, "/api/v1/tokens"},
		{http.MethodPost, "/api/v1/cards"},
		{http.MethodGet, "/api/v1/cards"},
		{http.MethodGet, "/api/v1/cards/card-1"},
		{http.MethodGet, "/api/v1/cards/card-1/transactions"},
		{http.MethodGet, "/api/v1/cards/card-1/qr"},
		{http.MethodPost, "/api/v1/cards/card-1/points"},
		{http.MethodPost, "/api/v1/cards/card-1/points/remove"},
		{http.MethodPost, "/api/v1/cards/card-1/reward"},
		{http.MethodPost, "/api/v1/admin/companies"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_%s_exists", tc.method, tc.path), func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			// Handlers and middleware answer 400/401 without a body or
			// credentials; only 404 means the route is missing.
			assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestRegisterRoutes_AdminDisabledWithoutKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := newTestApp(mocks.NewMockRepository(ctrl), nil, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/admin/companies", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequireUserMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockVerifier := mocks.NewMockAccessTokenVerifier(ctrl)
	app := newTestApp(mockRepo, mockVerifier, "")

	route := "/api/v1/cards"

	t.Run("fails without auth header", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, route, nil), -1)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("fails with malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, route, nil)
		req.Header.Set("Authorization", "BearerInvalidToken")
		resp, _ := app.Test(req, -1)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("fails with rejected token", func(t *testing.T) {
		mockVerifier.EXPECT().VerifyAccessToken("expired-token").Return(nil, errors.New("token is expired"))

		req := httptest.NewRequest(http.MethodGet, route, nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		resp, _ := app.Test(req, -1)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("passes subject to handler", func(t *testing.T) {
		claims := &service.UserClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-7"}}
		mockVerifier.EXPECT().VerifyAccessToken("good-token").Return(claims, nil)
		mockRepo.EXPECT().ListCardsByUser(gomock.Any(), "user-7").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, route, nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
