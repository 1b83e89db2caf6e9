package dto

import "time"

type GenerateTokenInput struct {
	CardID     string `json:"cardId"`
	ActionType string `json:"actionType"`
}

type TokenOutput struct {
	ID         string    `json:"id"`
	CardID     string    `json:"cardId"`
	Token      string    `json:"token"`
	ActionType string    `json:"actionType"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	IsUsed     bool      `json:"isUsed"`
}

type RedeemInput struct {
	Token     string `json:"token"`
	StorePin  string `json:"storePin"`
	Points    int    `json:"points,omitempty"`
	IPAddress string `json:"-"`
}

type RedeemOutput struct {
	Card          CardOutput        `json:"updatedCard"`
	Transaction   TransactionOutput `json:"transaction"`
	JustCompleted bool              `json:"justCompleted"`
}
