package repository

import (
	"context"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// QueueFilter narrows the claimable candidate list. Nil fields match all.
type QueueFilter struct {
	Type      *model.OrderType
	CallCount *int
}

// ListFilter narrows the administrative queue listing.
type ListFilter struct {
	Status    *model.OrderStatus
	CallCount *int
}

// OrderRepository describes persistence operations for the live order queue.
// Every call targets exactly one market partition.
type OrderRepository interface {
	Create(ctx context.Context, market model.Market, order *model.Order) error
	Get(ctx context.Context, market model.Market, docID string) (*model.Order, error)
	// Update rewrites the full document. Last-writer-wins by design: only
	// the holding operator edits a given order.
	Update(ctx context.Context, market model.Market, order *model.Order) error
	Delete(ctx context.Context, market model.Market, docID string) error
	// ListQueue returns pending orders matching the filter, oldest first.
	ListQueue(ctx context.Context, market model.Market, filter QueueFilter) ([]model.Order, error)
	List(ctx context.Context, market model.Market, filter ListFilter) ([]model.Order, error)
	// GetHeldByOperator returns the operator's in-progress order in the
	// market, or ErrNotFound.
	GetHeldByOperator(ctx context.Context, market model.Market, operator string) (*model.Order, error)
	// HoldsAnyOrder reports whether the operator has an in-progress order in
	// any market. Used by the market-switch guard.
	HoldsAnyOrder(ctx context.Context, operator string) (bool, error)
	// Claim performs the atomic compare-and-swap: re-reads the order inside
	// a transaction, verifies it is still pending, and marks it in progress
	// under the operator. Returns ErrNotFound if the order vanished and
	// ErrOrderNotAvailable if its status changed since the snapshot.
	Claim(ctx context.Context, market model.Market, docID, operator string, now time.Time) (*model.Order, error)
	// Confirm atomically persists the confirmed order, writes its archive
	// copy, removes the live row and appends the audit entry.
	Confirm(ctx context.Context, market model.Market, order *model.Order, archived *model.SentOrder, entry *model.AuditEntry) error
	MaxOrderID(ctx context.Context, market model.Market) (int64, error)
}
