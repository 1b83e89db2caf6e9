package service

import (
	"hash/fnv"
	"math"
	"time"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/google/uuid"
)

// AddPoints returns the card with n more points and the points_added record.
// The balance is kept within the int4 column range.
func AddPoints(card domain.LoyaltyCard, n int, now time.Time) (domain.LoyaltyCard, domain.Transaction, error) {
	if n <= 0 || n > math.MaxInt32-card.Points {
		return card, domain.Transaction{}, autherror.ErrInvalidPoints
	}

	card.Points += n
	card.UpdatedAt = now

	return card, domain.Transaction{
		ID:        uuid.NewString(),
		CardID:    card.ID,
		Type:      domain.TransactionPointsAdded,
		Points:    n,
		CreatedAt: now,
	}, nil
}

// RemovePoints takes n points off the card. Points never go negative.
func RemovePoints(card domain.LoyaltyCard, n int, now time.Time) (domain.LoyaltyCard, domain.Transaction, error) {
	if n <= 0 {
		return card, domain.Transaction{}, autherror.ErrInvalidPoints
	}
	if card.Points < n {
		return card, domain.Transaction{}, autherror.ErrInsufficientPts
	}

	card.Points -= n
	card.UpdatedAt = now

	return card, domain.Transaction{
		ID:        uuid.NewString(),
		CardID:    card.ID,
		Type:      domain.TransactionPointsRemoved,
		Points:    n,
		CreatedAt: now,
	}, nil
}

// CollectReward resets the card and records a reward worth a full card.
func CollectReward(card domain.LoyaltyCard, now time.Time) (domain.LoyaltyCard, domain.Transaction) {
	card.Points = 0
	card.UpdatedAt = now

	return card, domain.Transaction{
		ID:        uuid.NewString(),
		CardID:    card.ID,
		Type:      domain.TransactionRewardCollected,
		Points:    domain.CompletionThreshold,
		CreatedAt: now,
	}
}

// collectCompletedReward refuses to collect from a card below the threshold.
func collectCompletedReward(card domain.LoyaltyCard, now time.Time) (domain.LoyaltyCard, domain.Transaction, error) {
	if !IsComplete(card.Points) {
		return card, domain.Transaction{}, autherror.ErrCardNotComplete
	}
	updated, txn := CollectReward(card, now)
	return updated, txn, nil
}

func IsComplete(points int) bool {
	return points >= domain.CompletionThreshold
}

// JustCompleted reports whether a change from prev to next crossed the threshold.
func JustCompleted(prev, next int) bool {
	return prev < domain.CompletionThreshold && next >= domain.CompletionThreshold
}

var cardPalette = []string{
	"#F97316", "#EF4444", "#EC4899", "#A855F7",
	"#6366F1", "#0EA5E9", "#14B8A6", "#22C55E",
	"#EAB308", "#78716C",
}

// CardColor maps a store name to a stable palette color.
func CardColor(storeName string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(storeName))
	return cardPalette[h.Sum32()%uint32(len(cardPalette))]
}
