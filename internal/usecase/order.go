package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

// Numeric order ids are derived from the newest id in the queue the same
// way the legacy ingestion channel derives them, so both sources stay in
// one id space.
const orderIDOffset = 999000000

// OrderUseCase covers order creation and queue listings.
type OrderUseCase struct {
	orders repository.OrderRepository
	audit  *AuditRecorder
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, audit *AuditRecorder) *OrderUseCase {
	return &OrderUseCase{orders: orders, audit: audit, now: time.Now}
}

// Create registers a new pending order entered manually by an operator.
func (u *OrderUseCase) Create(ctx context.Context, market model.Market, operator string, draft *OrderEdits, orderType model.OrderType) (*model.Order, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, domainErrors.NewValidationError("name", "required")
	}
	if strings.TrimSpace(draft.Phone) == "" {
		return nil, domainErrors.NewValidationError("phone", "required")
	}
	if len(draft.Products) == 0 {
		return nil, domainErrors.NewValidationError("products", "at least one line item required")
	}
	if orderType == "" {
		orderType = model.OrderTypeSuccess
	}

	maxID, err := u.orders.MaxOrderID(ctx, market)
	if err != nil {
		return nil, err
	}
	orderID := maxID + orderIDOffset

	now := u.now()
	order := &model.Order{
		ID:        orderID,
		DocID:     strconv.FormatInt(orderID, 10),
		Status:    model.OrderStatusPending,
		CallCount: 0,
		Discount:  decimal.Zero,
		OrderTime: now,
		Type:      orderType,
		UpdatedAt: now,
	}

	if err := applyEdits(order, draft, uuid.NewString); err != nil {
		return nil, err
	}

	for {
		err := u.orders.Create(ctx, market, order)
		if err == nil {
			break
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, err
		}
		// id collision with a concurrently ingested order
		order.ID *= 10
		order.DocID = strconv.FormatInt(order.ID, 10)
	}

	u.audit.Record(ctx, model.AuditActionCreate, operator, market, order.ID)
	return order, nil
}

// Queue returns the claimable snapshot: pending orders, oldest first.
func (u *OrderUseCase) Queue(ctx context.Context, market model.Market, filter repository.QueueFilter) ([]model.Order, error) {
	return u.orders.ListQueue(ctx, market, filter)
}

// List returns the administrative queue view across all statuses.
func (u *OrderUseCase) List(ctx context.Context, market model.Market, filter repository.ListFilter) ([]model.Order, error) {
	return u.orders.List(ctx, market, filter)
}
