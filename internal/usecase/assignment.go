package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

// AssignmentUseCase grants exclusive ownership of one pending order to a
// requesting operator.
type AssignmentUseCase struct {
	orders repository.OrderRepository
	audit  *AuditRecorder
	now    func() time.Time
}

// NewAssignmentUseCase constructs AssignmentUseCase.
func NewAssignmentUseCase(orders repository.OrderRepository, audit *AuditRecorder) *AssignmentUseCase {
	return &AssignmentUseCase{orders: orders, audit: audit, now: time.Now}
}

// ClaimNext claims the oldest pending order matching the filter for the
// operator. An order already held by the operator is released first; if that
// release fails the claim fails with ErrAlreadyHoldingOrder. A lost race is
// surfaced as ErrOrderNotAvailable and never retried against the next
// candidate — the caller re-requests.
func (u *AssignmentUseCase) ClaimNext(ctx context.Context, market model.Market, operator string, filter repository.QueueFilter) (*model.Order, error) {
	held, err := u.orders.GetHeldByOperator(ctx, market, operator)
	switch {
	case err == nil:
		held.Release(u.now())
		if err := u.orders.Update(ctx, market, held); err != nil {
			return nil, fmt.Errorf("%w: release failed: %w", domainErrors.ErrAlreadyHoldingOrder, err)
		}
	case errors.Is(err, domainErrors.ErrNotFound):
		// nothing held, proceed
	default:
		return nil, err
	}

	queue, err := u.orders.ListQueue(ctx, market, filter)
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		return nil, domainErrors.ErrNoOrdersAvailable
	}

	claimed, err := u.orders.Claim(ctx, market, queue[0].DocID, operator, u.now())
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, model.AuditActionNext, operator, market, claimed.ID)
	return claimed, nil
}

// Current returns the order the operator currently holds in the market.
func (u *AssignmentUseCase) Current(ctx context.Context, market model.Market, operator string) (*model.Order, error) {
	return u.orders.GetHeldByOperator(ctx, market, operator)
}

// CanSwitchMarket enforces the market-switch precondition: an operator with
// any in-progress order may not change partitions until it is resolved.
func (u *AssignmentUseCase) CanSwitchMarket(ctx context.Context, operator string) error {
	holds, err := u.orders.HoldsAnyOrder(ctx, operator)
	if err != nil {
		return err
	}
	if holds {
		return domainErrors.ErrAlreadyHoldingOrder
	}
	return nil
}
