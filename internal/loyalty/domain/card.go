package domain

import "time"

// CompletionThreshold is the number of points that completes a card.
const CompletionThreshold = 10

type Company struct {
	ID        string
	Name      string
	PinHash   string
	CreatedAt time.Time
}

type LoyaltyCard struct {
	ID        string
	UserID    string
	CompanyID string
	StoreName string
	Points    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TransactionType string

const (
	TransactionPointsAdded     TransactionType = "points_added"
	TransactionPointsRemoved   TransactionType = "points_removed"
	TransactionRewardCollected TransactionType = "reward_collected"
)

type Transaction struct {
	ID        string
	CardID    string
	Type      TransactionType
	Points    int
	CreatedAt time.Time
}
