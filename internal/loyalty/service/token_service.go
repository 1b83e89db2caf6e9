package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/metrics"
	"github.com/google/uuid"
)

// TokenService issues the short-lived tokens rendered as QR codes.
type TokenService struct {
	repo    domain.Repository
	hmacKey []byte
	log     *slog.Logger
	now     func() time.Time
}

func NewTokenService(repo domain.Repository, hmacKey string, logger *slog.Logger) *TokenService {
	return &TokenService{
		repo:    repo,
		hmacKey: []byte(hmacKey),
		log:     logger,
		now:     time.Now,
	}
}

func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TokenService) Hash(token string) string {
	return HashToken(token, s.hmacKey)
}

// GenerateToken mints a token for one action on one of the user's cards.
// Any earlier unused token of the card is superseded by the repository.
func (s *TokenService) GenerateToken(ctx context.Context, userID string, input dto.GenerateTokenInput) (*dto.TokenOutput, error) {
	cardID := strings.TrimSpace(input.CardID)
	if cardID == "" || input.ActionType == "" {
		return nil, autherror.ErrMissingFields
	}
	action := domain.ActionType(input.ActionType)
	if !action.Valid() {
		return nil, autherror.ErrInvalidAction
	}

	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		s.log.Error("token issuance: card lookup failed", "card_id", cardID, "err", err)
		return nil, fmt.Errorf("%w: %v", autherror.ErrIssuance, err)
	}
	if card == nil || card.UserID != userID {
		return nil, autherror.ErrCardNotFound
	}
	if action == domain.ActionCollectReward && !IsComplete(card.Points) {
		return nil, autherror.ErrCardNotComplete
	}

	raw, err := NewOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", autherror.ErrIssuance, err)
	}

	now := s.now()
	token := &domain.TransactionToken{
		ID:         uuid.NewString(),
		CardID:     card.ID,
		Token:      raw,
		TokenHash:  s.Hash(raw),
		ActionType: action,
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.TokenTTL),
	}

	if err := s.repo.CreateToken(ctx, token); err != nil {
		s.log.Error("token issuance: store failed", "card_id", cardID, "action", action, "err", err)
		return nil, fmt.Errorf("%w: %v", autherror.ErrIssuance, err)
	}

	metrics.TokensIssued.Inc()
	out := toTokenOutput(token)
	return &out, nil
}
