package repository

import (
	"context"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// ArchiveRepository describes access to the immutable per-market archive of
// confirmed orders. Records are only ever appended; the sole mutations are
// one-time AWB assignment and carrier status updates.
type ArchiveRepository interface {
	GetByOrderID(ctx context.Context, market model.Market, orderID int64) (*model.SentOrder, error)
	GetByAWB(ctx context.Context, market model.Market, code string) (*model.SentOrder, error)
	ListByPhone(ctx context.Context, market model.Market, phone string) ([]model.SentOrder, error)
	// ListByOperatorAndInterval returns archive records whose archival time
	// falls in [from, to]. An empty operator matches all operators.
	ListByOperatorAndInterval(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.SentOrder, error)
	// ListUndelivered returns records with an assigned AWB not yet reported
	// delivered or returned, oldest first.
	ListUndelivered(ctx context.Context, market model.Market, limit int) ([]model.SentOrder, error)
	// SetAWB assigns the tracking code once; ErrAlreadyExists if set.
	SetAWB(ctx context.Context, market model.Market, orderID int64, awb string) error
	UpdateAWBStatus(ctx context.Context, market model.Market, orderID int64, status model.AWBStatus) error
}
