package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/google/uuid"
)

type auditRecorder struct {
	repo   domain.Repository
	logger *slog.Logger
}

// record appends an audit entry. Audit failures are logged, never returned.
func (a auditRecorder) record(ctx context.Context, entry domain.AuditLog, now time.Time) {
	entry.ID = uuid.NewString()
	entry.CreatedAt = now
	if err := a.repo.RecordAudit(ctx, &entry); err != nil {
		a.logger.Error("audit insert failed", "err", err, "action", entry.Action, "status", entry.Status)
	}
}

func (a auditRecorder) failed(ctx context.Context, entry domain.AuditLog, reason error, now time.Time) {
	entry.Status = domain.AuditFailed
	entry.Reason = reason.Error()
	a.logger.Warn("validation attempt failed",
		"action", entry.Action,
		"company_id", entry.CompanyID,
		"card_id", entry.CardID,
		"token_id", entry.TokenID,
		"reason", entry.Reason,
		"ip", entry.IPAddress,
	)
	a.record(ctx, entry, now)
}

func (a auditRecorder) succeeded(ctx context.Context, entry domain.AuditLog, now time.Time) {
	entry.Status = domain.AuditSuccess
	a.record(ctx, entry, now)
}
