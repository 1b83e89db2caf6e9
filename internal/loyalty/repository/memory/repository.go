// Package memory is an in-process Repository used by tests and local runs
// without a database. A single mutex serializes every operation, which gives
// MutateCard and RedeemToken the same atomicity as the postgres row locks.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
)

type Repository struct {
	mu           sync.Mutex
	companies    map[string]domain.Company
	cards        map[string]domain.LoyaltyCard
	transactions map[string][]domain.Transaction
	tokens       map[string]domain.TransactionToken
	audit        []domain.AuditLog
}

func NewRepository() *Repository {
	return &Repository{
		companies:    make(map[string]domain.Company),
		cards:        make(map[string]domain.LoyaltyCard),
		transactions: make(map[string][]domain.Transaction),
		tokens:       make(map[string]domain.TransactionToken),
	}
}

func (r *Repository) GetCompany(_ context.Context, companyID string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[companyID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Repository) CreateCompany(_ context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.companies[company.ID] = *company
	return nil
}

func (r *Repository) GetCard(_ context.Context, cardID string) (*domain.LoyaltyCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cards[cardID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Repository) GetCardByUserAndCompany(_ context.Context, userID, companyID string) (*domain.LoyaltyCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.cards {
		if c.UserID == userID && c.CompanyID == companyID {
			card := c
			return &card, nil
		}
	}
	return nil, nil
}

func (r *Repository) CreateCard(_ context.Context, card *domain.LoyaltyCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.cards {
		if c.UserID == card.UserID && c.CompanyID == card.CompanyID {
			return autherror.ErrCardAlreadyExist
		}
	}
	r.cards[card.ID] = *card
	return nil
}

func (r *Repository) ListCardsByUser(_ context.Context, userID string) ([]domain.LoyaltyCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.LoyaltyCard
	for _, c := range r.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repository) ListTransactions(_ context.Context, cardID string) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txns := r.transactions[cardID]
	out := make([]domain.Transaction, len(txns))
	copy(out, txns)
	return out, nil
}

func (r *Repository) MutateCard(_ context.Context, cardID string, mutate domain.MutationFunc) (*domain.LoyaltyCard, *domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.applyLocked(cardID, mutate)
}

func (r *Repository) applyLocked(cardID string, mutate domain.MutationFunc) (*domain.LoyaltyCard, *domain.Transaction, error) {
	card, ok := r.cards[cardID]
	if !ok {
		return nil, nil, autherror.ErrCardNotFound
	}

	updated, txn, err := mutate(card)
	if err != nil {
		return nil, nil, err
	}

	r.cards[cardID] = updated
	r.transactions[cardID] = append(r.transactions[cardID], txn)
	return &updated, &txn, nil
}

func (r *Repository) CreateToken(_ context.Context, token *domain.TransactionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[token.CardID]; !ok {
		return autherror.ErrCardNotFound
	}
	for id, t := range r.tokens {
		if t.CardID == token.CardID && !t.IsUsed {
			delete(r.tokens, id)
		}
	}
	stored := *token
	stored.Token = ""
	r.tokens[token.ID] = stored
	return nil
}

func (r *Repository) GetTokenByHash(_ context.Context, tokenHash string) (*domain.TransactionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			token := t
			return &token, nil
		}
	}
	return nil, nil
}

func (r *Repository) RedeemToken(_ context.Context, tokenID string, now time.Time, mutate domain.MutationFunc) (*domain.LoyaltyCard, *domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return nil, nil, autherror.ErrTokenNotFound
	}
	if token.IsUsed {
		return nil, nil, autherror.ErrTokenAlreadyUsed
	}
	if token.Expired(now) {
		return nil, nil, autherror.ErrTokenExpired
	}

	card, txn, err := r.applyLocked(token.CardID, mutate)
	if err != nil {
		return nil, nil, err
	}

	usedAt := now
	token.IsUsed = true
	token.UsedAt = &usedAt
	r.tokens[tokenID] = token
	return card, txn, nil
}

func (r *Repository) DeleteExpiredTokens(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, t := range r.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

func (r *Repository) RecordAudit(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audit = append(r.audit, *entry)
	return nil
}

// AuditLogs returns a copy of the recorded audit entries.
func (r *Repository) AuditLogs() []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.AuditLog, len(r.audit))
	copy(out, r.audit)
	return out
}
