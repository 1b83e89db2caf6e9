package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const cardColumns = `id, user_id, company_id, store_name, points, created_at, updated_at`

func scanCard(row pgx.Row) (*domain.LoyaltyCard, error) {
	var card domain.LoyaltyCard
	err := row.Scan(&card.ID, &card.UserID, &card.CompanyID, &card.StoreName, &card.Points, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *PostgresRepository) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT id, name, pin_hash, created_at
		FROM companies
		WHERE id = $1
		LIMIT 1;
	`
	var company domain.Company
	err := r.db.QueryRow(ctx, query, companyID).Scan(&company.ID, &company.Name, &company.PinHash, &company.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

func (r *PostgresRepository) CreateCompany(ctx context.Context, company *domain.Company) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO companies (id, name, pin_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, company.ID, company.Name, company.PinHash, company.CreatedAt)
	return err
}

func (r *PostgresRepository) GetCard(ctx context.Context, cardID string) (*domain.LoyaltyCard, error) {
	card, err := scanCard(r.db.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

func (r *PostgresRepository) GetCardByUserAndCompany(ctx context.Context, userID, companyID string) (*domain.LoyaltyCard, error) {
	card, err := scanCard(r.db.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE user_id = $1 AND company_id = $2`, userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card by company: %w", err)
	}
	return card, nil
}

func (r *PostgresRepository) CreateCard(ctx context.Context, card *domain.LoyaltyCard) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cards (id, user_id, company_id, store_name, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, card.ID, card.UserID, card.CompanyID, card.StoreName, card.Points, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return autherror.ErrCardAlreadyExist
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) ListCardsByUser(ctx context.Context, userID string) ([]domain.LoyaltyCard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.LoyaltyCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, cardID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, card_id, type, points, created_at
		FROM transactions
		WHERE card_id = $1
		ORDER BY created_at, id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		var txnType string
		if err := rows.Scan(&txn.ID, &txn.CardID, &txnType, &txn.Points, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn.Type = domain.TransactionType(txnType)
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

// MutateCard locks the card row, applies mutate and appends its transaction
// in one database transaction.
func (r *PostgresRepository) MutateCard(ctx context.Context, cardID string, mutate domain.MutationFunc) (*domain.LoyaltyCard, *domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	card, txn, err := applyMutation(ctx, tx, cardID, mutate)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit card mutation: %w", err)
	}
	return card, txn, nil
}

func applyMutation(ctx context.Context, tx pgx.Tx, cardID string, mutate domain.MutationFunc) (*domain.LoyaltyCard, *domain.Transaction, error) {
	card, err := scanCard(tx.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1 FOR UPDATE`, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, autherror.ErrCardNotFound
		}
		return nil, nil, fmt.Errorf("failed to lock card: %w", err)
	}

	updated, txn, err := mutate(*card)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE cards SET points = $2, updated_at = $3 WHERE id = $1
	`, updated.ID, updated.Points, updated.UpdatedAt); err != nil {
		return nil, nil, fmt.Errorf("failed to update card: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO transactions (id, card_id, type, points, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, txn.ID, txn.CardID, string(txn.Type), txn.Points, txn.CreatedAt); err != nil {
		return nil, nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return &updated, &txn, nil
}

// CreateToken stores a new token and deletes the card's other unused tokens.
// The card row lock serializes issuance per card, so at most one unused
// token survives concurrent requests.
func (r *PostgresRepository) CreateToken(ctx context.Context, token *domain.TransactionToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedID string
	err = tx.QueryRow(ctx, `SELECT id FROM cards WHERE id = $1 FOR UPDATE`, token.CardID).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return autherror.ErrCardNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock card: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM transaction_tokens WHERE card_id = $1 AND is_used = FALSE
	`, token.CardID); err != nil {
		return fmt.Errorf("failed to supersede tokens: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO transaction_tokens (id, card_id, token_hash, action_type, created_at, expires_at, is_used)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
	`, token.ID, token.CardID, token.TokenHash, string(token.ActionType), token.CreatedAt, token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetTokenByHash(ctx context.Context, tokenHash string) (*domain.TransactionToken, error) {
	query := `
		SELECT id, card_id, token_hash, action_type, created_at, expires_at, used_at, is_used
		FROM transaction_tokens
		WHERE token_hash = $1
	`
	var t domain.TransactionToken
	var action string
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&t.ID, &t.CardID, &t.TokenHash, &action, &t.CreatedAt, &t.ExpiresAt, &t.UsedAt, &t.IsUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.ActionType = domain.ActionType(action)
	return &t, nil
}

// RedeemToken locks the token, re-checks that it is unused and unexpired,
// marks it used with a conditional update and applies the card mutation.
// Everything commits together or not at all.
func (r *PostgresRepository) RedeemToken(ctx context.Context, tokenID string, now time.Time, mutate domain.MutationFunc) (*domain.LoyaltyCard, *domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var cardID string
	var isUsed bool
	var expiresAt time.Time
	err = tx.QueryRow(ctx, `
		SELECT card_id, is_used, expires_at
		FROM transaction_tokens
		WHERE id = $1
		FOR UPDATE
	`, tokenID).Scan(&cardID, &isUsed, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, autherror.ErrTokenNotFound
		}
		return nil, nil, fmt.Errorf("failed to lock token: %w", err)
	}

	if isUsed {
		return nil, nil, autherror.ErrTokenAlreadyUsed
	}
	if now.After(expiresAt) {
		return nil, nil, autherror.ErrTokenExpired
	}

	tag, err := tx.Exec(ctx, `
		UPDATE transaction_tokens
		SET is_used = TRUE, used_at = $2
		WHERE id = $1 AND is_used = FALSE
	`, tokenID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mark token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil, autherror.ErrTokenAlreadyUsed
	}

	card, txn, err := applyMutation(ctx, tx, cardID, mutate)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit redemption: %w", err)
	}
	return card, txn, nil
}

func (r *PostgresRepository) DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM transaction_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) RecordAudit(ctx context.Context, entry *domain.AuditLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, action, status, company_id, card_id, token_id, reason, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, entry.ID, entry.Action, string(entry.Status),
		nullIfEmpty(entry.CompanyID), nullIfEmpty(entry.CardID), nullIfEmpty(entry.TokenID),
		nullIfEmpty(entry.Reason), nullIfEmpty(entry.IPAddress), entry.CreatedAt)
	return err
}

func nullIfEmpty(s string) any {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return v
}
