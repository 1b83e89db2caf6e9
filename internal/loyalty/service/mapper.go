package service

import (
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
)

func toCardOutput(card *domain.LoyaltyCard) dto.CardOutput {
	return dto.CardOutput{
		ID:        card.ID,
		CompanyID: card.CompanyID,
		StoreName: card.StoreName,
		Points:    card.Points,
		Completed: IsComplete(card.Points),
		Color:     CardColor(card.StoreName),
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

func toTransactionOutput(txn *domain.Transaction) dto.TransactionOutput {
	return dto.TransactionOutput{
		ID:        txn.ID,
		CardID:    txn.CardID,
		Type:      string(txn.Type),
		Points:    txn.Points,
		Timestamp: txn.CreatedAt,
	}
}

func toTokenOutput(token *domain.TransactionToken) dto.TokenOutput {
	return dto.TokenOutput{
		ID:         token.ID,
		CardID:     token.CardID,
		Token:      token.Token,
		ActionType: string(token.ActionType),
		CreatedAt:  token.CreatedAt,
		ExpiresAt:  token.ExpiresAt,
		IsUsed:     token.IsUsed,
	}
}
