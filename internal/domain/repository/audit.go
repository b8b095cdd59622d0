package repository

import (
	"context"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// AuditRepository appends and queries the action log.
type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditEntry) error
	// ListByUserAndInterval returns entries for the user within [from, to],
	// newest first.
	ListByUserAndInterval(ctx context.Context, user string, from, to time.Time) ([]model.AuditEntry, error)
}
