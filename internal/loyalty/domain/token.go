package domain

import "time"

// TokenTTL is the validity window of a transaction token.
const TokenTTL = 30 * time.Second

type ActionType string

const (
	ActionAddPoints     ActionType = "add_points"
	ActionCollectReward ActionType = "collect_reward"
)

func (a ActionType) Valid() bool {
	return a == ActionAddPoints || a == ActionCollectReward
}

// TransactionToken is a single-use credential for one card mutation.
// Token holds the plaintext only right after issuance; storage keeps TokenHash.
type TransactionToken struct {
	ID         string
	CardID     string
	Token      string
	TokenHash  string
	ActionType ActionType
	CreatedAt  time.Time
	ExpiresAt  time.Time
	UsedAt     *time.Time
	IsUsed     bool
}

// Expired reports whether the token can no longer be redeemed at now.
// A token is still valid at exactly ExpiresAt.
func (t *TransactionToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
