package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain Repository

import (
	"context"
	"time"
)

// MutationFunc computes the new state of a locked card and the transaction
// that records the change. Returning an error aborts the mutation.
type MutationFunc func(card LoyaltyCard) (LoyaltyCard, Transaction, error)

// Lookups return (nil, nil) when the row does not exist.
type Repository interface {
	GetCompany(ctx context.Context, companyID string) (*Company, error)
	CreateCompany(ctx context.Context, company *Company) error

	GetCard(ctx context.Context, cardID string) (*LoyaltyCard, error)
	GetCardByUserAndCompany(ctx context.Context, userID, companyID string) (*LoyaltyCard, error)
	CreateCard(ctx context.Context, card *LoyaltyCard) error
	ListCardsByUser(ctx context.Context, userID string) ([]LoyaltyCard, error)
	ListTransactions(ctx context.Context, cardID string) ([]Transaction, error)
	MutateCard(ctx context.Context, cardID string, mutate MutationFunc) (*LoyaltyCard, *Transaction, error)

	CreateToken(ctx context.Context, token *TransactionToken) error
	GetTokenByHash(ctx context.Context, tokenHash string) (*TransactionToken, error)
	RedeemToken(ctx context.Context, tokenID string, now time.Time, mutate MutationFunc) (*LoyaltyCard, *Transaction, error)
	DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error)

	RecordAudit(ctx context.Context, entry *AuditLog) error
}
