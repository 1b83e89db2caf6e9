package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/qrsession"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRedeemer struct {
	got dto.RedeemInput
	out *dto.RedeemOutput
	err error
}

func (s *stubRedeemer) Redeem(_ context.Context, in dto.RedeemInput) (*dto.RedeemOutput, error) {
	s.got = in
	return s.out, s.err
}

func payloadFor(t *testing.T, action string) string {
	t.Helper()
	p, err := qrsession.EncodeTokenPayload(dto.TokenOutput{
		CardID:     "card-1",
		Token:      "raw-token",
		ActionType: action,
		ExpiresAt:  time.Now().Add(30 * time.Second),
	})
	require.NoError(t, err)
	return p
}

func TestRedeem(t *testing.T) {
	t.Run("add points sends points and pin", func(t *testing.T) {
		stub := &stubRedeemer{out: &dto.RedeemOutput{Card: dto.CardOutput{ID: "card-1", Points: 10}, JustCompleted: true}}
		var out bytes.Buffer

		err := redeem(context.Background(), stub, options{payload: payloadFor(t, "add_points"), pin: "1234", points: 2}, &out)

		require.NoError(t, err)
		assert.Equal(t, dto.RedeemInput{Token: "raw-token", StorePin: "1234", Points: 2}, stub.got)
		assert.Contains(t, out.String(), "10 pontos")
		assert.Contains(t, out.String(), "cartão completo")
	})

	t.Run("collect reward sends no points", func(t *testing.T) {
		stub := &stubRedeemer{out: &dto.RedeemOutput{Card: dto.CardOutput{ID: "card-1"}}}

		err := redeem(context.Background(), stub, options{payload: payloadFor(t, "collect_reward"), pin: "1234", points: 5}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Zero(t, stub.got.Points)
	})

	t.Run("rejects foreign payload", func(t *testing.T) {
		err := redeem(context.Background(), &stubRedeemer{}, options{payload: `{"type":"loyalty_card","cardId":"card-1"}`}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("surfaces api error", func(t *testing.T) {
		stub := &stubRedeemer{err: errors.New("token já utilizado")}
		err := redeem(context.Background(), stub, options{payload: payloadFor(t, "add_points"), pin: "1234"}, &bytes.Buffer{})
		assert.EqualError(t, err, "token já utilizado")
	})
}

type failingIssuer struct{}

func (failingIssuer) IssueToken(context.Context, string, string) (*dto.TokenOutput, error) {
	return nil, errors.New("offline")
}

func TestShow(t *testing.T) {
	t.Run("requires card", func(t *testing.T) {
		err := show(context.Background(), failingIssuer{}, options{}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("returns issuance failure", func(t *testing.T) {
		err := show(context.Background(), failingIssuer{}, options{cardID: "card-1", action: "add_points"}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "offline")
	})
}
