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
	"github.com/google/uuid"
)

type CardService struct {
	repo      domain.Repository
	pins      *PinService
	publisher events.Publisher
	audit     auditRecorder
	log       *slog.Logger
	now       func() time.Time
}

func NewCardService(repo domain.Repository, pins *PinService, publisher events.Publisher, logger *slog.Logger) *CardService {
	return &CardService{
		repo:      repo,
		pins:      pins,
		publisher: publisher,
		audit:     auditRecorder{repo: repo, logger: logger},
		log:       logger,
		now:       time.Now,
	}
}

func (s *CardService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *CardService) CreateCard(ctx context.Context, userID string, input dto.CreateCardInput) (*dto.CardOutput, error) {
	companyID := strings.TrimSpace(input.CompanyID)
	if companyID == "" {
		return nil, autherror.ErrMissingFields
	}

	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, autherror.ErrCompanyNotFound
	}

	existing, err := s.repo.GetCardByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrCardAlreadyExist
	}

	now := s.now()
	card := &domain.LoyaltyCard{
		ID:        uuid.NewString(),
		UserID:    userID,
		CompanyID: company.ID,
		StoreName: company.Name,
		Points:    0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateCard(ctx, card); err != nil {
		return nil, err
	}

	out := toCardOutput(card)
	return &out, nil
}

func (s *CardService) GetCard(ctx context.Context, userID, cardID string) (*dto.CardOutput, error) {
	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	out := toCardOutput(card)
	return &out, nil
}

func (s *CardService) ListCards(ctx context.Context, userID string) ([]dto.CardOutput, error) {
	cards, err := s.repo.ListCardsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CardOutput, 0, len(cards))
	for i := range cards {
		out = append(out, toCardOutput(&cards[i]))
	}
	return out, nil
}

// ListTransactions returns the card history oldest first.
func (s *CardService) ListTransactions(ctx context.Context, userID, cardID string) ([]dto.TransactionOutput, error) {
	if _, err := s.ownedCard(ctx, userID, cardID); err != nil {
		return nil, err
	}

	txns, err := s.repo.ListTransactions(ctx, cardID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransactionOutput, 0, len(txns))
	for i := range txns {
		out = append(out, toTransactionOutput(&txns[i]))
	}
	return out, nil
}

// AddPointsWithPin is direct store PIN entry on the user's device.
func (s *CardService) AddPointsWithPin(ctx context.Context, userID, cardID string, input dto.DirectPointsInput, ip string) (*dto.MutationOutput, error) {
	if input.Points <= 0 {
		return nil, autherror.ErrInvalidPoints
	}
	return s.mutateWithPin(ctx, userID, cardID, input.Pin, ip, func(c domain.LoyaltyCard, now time.Time) (domain.LoyaltyCard, domain.Transaction, error) {
		return AddPoints(c, input.Points, now)
	})
}

// RemovePointsWithPin lets the store correct a card, e.g. after a mistaken
// entry. The balance never drops below zero.
func (s *CardService) RemovePointsWithPin(ctx context.Context, userID, cardID string, input dto.DirectPointsInput, ip string) (*dto.MutationOutput, error) {
	if input.Points <= 0 {
		return nil, autherror.ErrInvalidPoints
	}
	return s.mutateWithPin(ctx, userID, cardID, input.Pin, ip, func(c domain.LoyaltyCard, now time.Time) (domain.LoyaltyCard, domain.Transaction, error) {
		return RemovePoints(c, input.Points, now)
	})
}

func (s *CardService) CollectRewardWithPin(ctx context.Context, userID, cardID string, input dto.DirectRewardInput, ip string) (*dto.MutationOutput, error) {
	return s.mutateWithPin(ctx, userID, cardID, input.Pin, ip, collectCompletedReward)
}

type timedMutation func(card domain.LoyaltyCard, now time.Time) (domain.LoyaltyCard, domain.Transaction, error)

func (s *CardService) mutateWithPin(ctx context.Context, userID, cardID, pin, ip string, apply timedMutation) (*dto.MutationOutput, error) {
	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := domain.AuditLog{
		Action:    domain.AuditActionDirectEntry,
		CompanyID: card.CompanyID,
		CardID:    card.ID,
		IPAddress: ip,
	}

	if _, err := s.pins.ValidateForAddPoints(ctx, card.CompanyID, pin); err != nil {
		if autherror.KindOf(err) == autherror.KindInternal {
			return nil, err
		}
		s.audit.failed(ctx, entry, err, now)
		return nil, err
	}

	var previous int
	updated, txn, err := s.repo.MutateCard(ctx, card.ID, func(c domain.LoyaltyCard) (domain.LoyaltyCard, domain.Transaction, error) {
		previous = c.Points
		return apply(c, now)
	})
	if err != nil {
		if autherror.KindOf(err) == autherror.KindInternal {
			s.log.Error("direct entry mutation failed", "card_id", card.ID, "err", err)
			return nil, fmt.Errorf("mutate card %s: %w", card.ID, err)
		}
		s.audit.failed(ctx, entry, err, now)
		return nil, err
	}

	s.audit.succeeded(ctx, entry, now)
	publishCardEvent(ctx, s.publisher, s.log, updated, txn, "pin")

	return &dto.MutationOutput{
		Card:          toCardOutput(updated),
		Transaction:   toTransactionOutput(txn),
		JustCompleted: JustCompleted(previous, updated.Points),
	}, nil
}

// ownedCard hides cards of other users behind ErrCardNotFound.
func (s *CardService) ownedCard(ctx context.Context, userID, cardID string) (*domain.LoyaltyCard, error) {
	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.UserID != userID {
		return nil, autherror.ErrCardNotFound
	}
	return card, nil
}
