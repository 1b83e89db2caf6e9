package qrsession

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
)

const (
	PayloadTypeToken = "transaction_token"
	PayloadTypeCard  = "loyalty_card"
)

// TokenPayload is what the store terminal reads from a transaction QR code.
type TokenPayload struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	CardID    string    `json:"cardId"`
	Action    string    `json:"action"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CardPayload struct {
	Type      string `json:"type"`
	CardID    string `json:"cardId"`
	CompanyID string `json:"companyId"`
}

func EncodeTokenPayload(token dto.TokenOutput) (string, error) {
	b, err := json.Marshal(TokenPayload{
		Type:      PayloadTypeToken,
		Token:     token.Token,
		CardID:    token.CardID,
		Action:    token.ActionType,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeTokenPayload(raw string) (TokenPayload, error) {
	var p TokenPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, fmt.Errorf("decode token payload: %w", err)
	}
	if p.Type != PayloadTypeToken || p.Token == "" {
		return p, fmt.Errorf("not a transaction token payload")
	}
	return p, nil
}

func EncodeCardPayload(cardID, companyID string) (string, error) {
	b, err := json.Marshal(CardPayload{Type: PayloadTypeCard, CardID: cardID, CompanyID: companyID})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
