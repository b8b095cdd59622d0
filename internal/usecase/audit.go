package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

// AuditRecorder appends entries to the action log. A failed append never
// rolls back the order mutation it describes; it is reported and the
// persisted order state stays authoritative.
type AuditRecorder struct {
	audit  repository.AuditRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewAuditRecorder constructs AuditRecorder.
func NewAuditRecorder(audit repository.AuditRepository, logger *slog.Logger) *AuditRecorder {
	return &AuditRecorder{audit: audit, logger: logger, now: time.Now}
}

// Record appends one action entry.
func (r *AuditRecorder) Record(ctx context.Context, action model.AuditAction, user string, market model.Market, orderID int64) {
	entry := &model.AuditEntry{
		Action:     action,
		User:       user,
		Market:     market,
		OrderID:    orderID,
		ActionDate: r.now(),
	}
	if err := r.audit.Append(ctx, entry); err != nil {
		r.logger.Error("audit append failed",
			slog.String("action", string(action)),
			slog.String("user", user),
			slog.String("error", err.Error()),
		)
	}
}

// Entry builds an audit entry without persisting it, for repositories that
// append it inside their own transaction.
func (r *AuditRecorder) Entry(action model.AuditAction, user string, market model.Market, orderID int64) *model.AuditEntry {
	return &model.AuditEntry{
		Action:     action,
		User:       user,
		Market:     market,
		OrderID:    orderID,
		ActionDate: r.now(),
	}
}

// History returns entries for a user inside the interval.
func (r *AuditRecorder) History(ctx context.Context, user string, from, to time.Time) ([]model.AuditEntry, error) {
	return r.audit.ListByUserAndInterval(ctx, user, from, to)
}
