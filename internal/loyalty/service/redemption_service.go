package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/events"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/metrics"
	"github.com/google/uuid"
)

// RedemptionService consumes transaction tokens presented at the store terminal.
type RedemptionService struct {
	repo      domain.Repository
	tokens    *TokenService
	publisher events.Publisher
	audit     auditRecorder
	log       *slog.Logger
	now       func() time.Time
}

func NewRedemptionService(repo domain.Repository, tokens *TokenService, publisher events.Publisher, logger *slog.Logger) *RedemptionService {
	return &RedemptionService{
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
		audit:     auditRecorder{repo: repo, logger: logger},
		log:       logger,
		now:       time.Now,
	}
}

func (s *RedemptionService) SetClock(now func() time.Time) {
	s.now = now
}

// Redeem applies the token's action exactly once. Preconditions are checked
// in order: token exists, unused, unexpired, then the store PIN. The
// repository re-checks the token state under lock before mutating, so
// concurrent redemptions of one token yield a single success.
func (s *RedemptionService) Redeem(ctx context.Context, input dto.RedeemInput) (*dto.RedeemOutput, error) {
	raw := strings.TrimSpace(input.Token)
	pin := input.StorePin
	if raw == "" || pin == "" {
		metrics.TokenRedemptions.WithLabelValues(autherror.KindValidation.String()).Inc()
		return nil, autherror.ErrMissingFields
	}
	if !IsValidFormat(pin) {
		metrics.TokenRedemptions.WithLabelValues(autherror.KindValidation.String()).Inc()
		return nil, autherror.ErrInvalidPinFormat
	}

	now := s.now()
	entry := domain.AuditLog{Action: domain.AuditActionTokenRedeem, IPAddress: input.IPAddress}

	token, err := s.repo.GetTokenByHash(ctx, s.tokens.Hash(raw))
	if err != nil {
		return nil, s.internal(fmt.Errorf("get token: %w", err))
	}
	if token == nil {
		return nil, s.reject(ctx, entry, autherror.ErrTokenNotFound, now)
	}
	entry.TokenID = token.ID
	entry.CardID = token.CardID

	if token.IsUsed {
		return nil, s.reject(ctx, entry, autherror.ErrTokenAlreadyUsed, now)
	}
	if token.Expired(now) {
		return nil, s.reject(ctx, entry, autherror.ErrTokenExpired, now)
	}

	card, err := s.repo.GetCard(ctx, token.CardID)
	if err != nil {
		return nil, s.internal(fmt.Errorf("get card %s: %w", token.CardID, err))
	}
	if card == nil {
		return nil, s.reject(ctx, entry, autherror.ErrCardNotFound, now)
	}
	entry.CompanyID = card.CompanyID

	company, err := s.repo.GetCompany(ctx, card.CompanyID)
	if err != nil {
		return nil, s.internal(fmt.Errorf("get company %s: %w", card.CompanyID, err))
	}
	if company == nil {
		return nil, s.reject(ctx, entry, autherror.ErrCompanyNotFound, now)
	}
	if !matchPin(company.PinHash, pin) {
		return nil, s.reject(ctx, entry, autherror.ErrPinMismatch, now)
	}

	if token.ActionType == domain.ActionAddPoints && input.Points <= 0 {
		return nil, s.reject(ctx, entry, autherror.ErrInvalidPoints, now)
	}

	var previous int
	mutate := func(c domain.LoyaltyCard) (domain.LoyaltyCard, domain.Transaction, error) {
		previous = c.Points
		if token.ActionType == domain.ActionCollectReward {
			return collectCompletedReward(c, now)
		}
		return AddPoints(c, input.Points, now)
	}

	updated, txn, err := s.repo.RedeemToken(ctx, token.ID, now, mutate)
	if err != nil {
		if autherror.KindOf(err) == autherror.KindInternal {
			return nil, s.internal(fmt.Errorf("redeem token %s: %w", token.ID, err))
		}
		return nil, s.reject(ctx, entry, err, now)
	}

	metrics.TokenRedemptions.WithLabelValues(metrics.ResultSuccess).Inc()
	s.audit.succeeded(ctx, entry, now)
	publishCardEvent(ctx, s.publisher, s.log, updated, txn, "token")

	return &dto.RedeemOutput{
		Card:          toCardOutput(updated),
		Transaction:   toTransactionOutput(txn),
		JustCompleted: JustCompleted(previous, updated.Points),
	}, nil
}

func (s *RedemptionService) reject(ctx context.Context, entry domain.AuditLog, err error, now time.Time) error {
	metrics.TokenRedemptions.WithLabelValues(autherror.KindOf(err).String()).Inc()
	s.audit.failed(ctx, entry, err, now)
	return err
}

func (s *RedemptionService) internal(err error) error {
	metrics.TokenRedemptions.WithLabelValues(autherror.KindInternal.String()).Inc()
	s.log.Error("token redemption failed", "err", err)
	return err
}

var eventTypes = map[domain.TransactionType]string{
	domain.TransactionPointsAdded:     events.TypePointsAdded,
	domain.TransactionPointsRemoved:   events.TypePointsRemoved,
	domain.TransactionRewardCollected: events.TypeRewardCollected,
}

// publishCardEvent announces a committed mutation. Broker failures only log.
func publishCardEvent(ctx context.Context, publisher events.Publisher, logger *slog.Logger, card *domain.LoyaltyCard, txn *domain.Transaction, source string) {
	if publisher == nil {
		return
	}
	event := events.CardEvent{
		EventID:    uuid.NewString(),
		Type:       eventTypes[txn.Type],
		CardID:     card.ID,
		UserID:     card.UserID,
		CompanyID:  card.CompanyID,
		Points:     txn.Points,
		Balance:    card.Points,
		Source:     source,
		OccurredAt: txn.CreatedAt,
	}
	if err := publisher.PublishCardEvent(ctx, event); err != nil {
		logger.Warn("card event publish failed", "type", event.Type, "card_id", card.ID, "err", err)
	}
}
