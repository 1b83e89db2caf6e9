package dto

import "time"

type CreateCardInput struct {
	CompanyID string `json:"companyId"`
}

type CardOutput struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	StoreName string    `json:"storeName"`
	Points    int       `json:"points"`
	Completed bool      `json:"completed"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TransactionOutput struct {
	ID        string    `json:"id"`
	CardID    string    `json:"cardId"`
	Type      string    `json:"type"`
	Points    int       `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

type DirectPointsInput struct {
	Pin    string `json:"pin"`
	Points int    `json:"points"`
}

type DirectRewardInput struct {
	Pin string `json:"pin"`
}

type MutationOutput struct {
	Card          CardOutput        `json:"card"`
	Transaction   TransactionOutput `json:"transaction"`
	JustCompleted bool              `json:"justCompleted"`
}
