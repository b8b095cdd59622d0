package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

// OrderEdits carries the editable fields an operator submits while holding
// an order. Line items without an instance id are treated as newly added and
// get one generated; the derived total is never taken from the client.
type OrderEdits struct {
	Name            string
	Phone           string
	CustomerAddress string
	Address         model.Address
	Products        []model.LineItem
	Comment         string
	Discount        decimal.Decimal
	DeliveryPrice   decimal.Decimal
	DeliveryDate    *time.Time
}

// LifecycleUseCase validates and applies status transitions on held orders.
// Every mutating call re-checks the single-holder precondition, not just the
// claim.
type LifecycleUseCase struct {
	orders repository.OrderRepository
	audit  *AuditRecorder
	now    func() time.Time
	newID  func() string
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(orders repository.OrderRepository, audit *AuditRecorder) *LifecycleUseCase {
	return &LifecycleUseCase{orders: orders, audit: audit, now: time.Now, newID: uuid.NewString}
}

func (u *LifecycleUseCase) held(ctx context.Context, market model.Market, docID, operator string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, market, docID)
	if err != nil {
		return nil, err
	}
	if !order.HeldBy(operator) {
		return nil, domainErrors.ErrNotHoldingOrder
	}
	return order, nil
}

func (u *LifecycleUseCase) applyEdits(order *model.Order, edits *OrderEdits) error {
	return applyEdits(order, edits, u.newID)
}

// applyEdits copies submitted fields onto the order, generating instance ids
// for new line items and recomputing the derived total.
func applyEdits(order *model.Order, edits *OrderEdits, newID func() string) error {
	if edits.Discount.IsNegative() {
		return domainErrors.NewValidationError("discount", "must not be negative")
	}
	if edits.DeliveryPrice.IsNegative() {
		return domainErrors.NewValidationError("deliveryPrice", "must not be negative")
	}
	for i := range edits.Products {
		if edits.Products[i].Upsell.IsNegative() {
			return domainErrors.NewValidationError("upsell", "must not be negative")
		}
		if edits.Products[i].InstanceID == "" {
			edits.Products[i].InstanceID = newID()
		}
	}

	order.Name = edits.Name
	order.Phone = edits.Phone
	order.CustomerAddress = edits.CustomerAddress
	order.Address = edits.Address
	order.Products = edits.Products
	order.Comment = edits.Comment
	order.Discount = edits.Discount
	order.DeliveryPrice = edits.DeliveryPrice
	order.DeliveryDate = edits.DeliveryDate
	order.TotalPrice = order.Total()
	return nil
}

// Update persists in-place edits on a held order without changing status.
func (u *LifecycleUseCase) Update(ctx context.Context, market model.Market, docID, operator string, edits *OrderEdits) (*model.Order, error) {
	order, err := u.held(ctx, market, docID, operator)
	if err != nil {
		return nil, err
	}
	if err := u.applyEdits(order, edits); err != nil {
		return nil, err
	}
	order.UpdatedAt = u.now()
	if err := u.orders.Update(ctx, market, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm resolves a held order as confirmed: the address must be fully
// populated and at least one line item present. The total is recomputed, the
// archive copy written and the live row removed in one transaction.
func (u *LifecycleUseCase) Confirm(ctx context.Context, market model.Market, docID, operator string) (*model.SentOrder, error) {
	order, err := u.held(ctx, market, docID, operator)
	if err != nil {
		return nil, err
	}
	if !order.Address.Complete() {
		return nil, domainErrors.NewValidationError("address", "all subfields must be filled in")
	}
	if len(order.Products) == 0 {
		return nil, domainErrors.NewValidationError("products", "at least one line item required")
	}

	now := u.now()
	order.Status = model.OrderStatusConfirmed
	order.AssignedOperator = nil
	order.ResolvedBy = &operator
	order.TotalPrice = order.Total()
	order.UpdatedAt = now

	archived := &model.SentOrder{Order: *order, AWBStatus: model.AWBStatusUnknown}
	entry := u.audit.Entry(model.AuditActionConfirm, operator, market, order.ID)
	if err := u.orders.Confirm(ctx, market, order, archived, entry); err != nil {
		return nil, err
	}
	return archived, nil
}

// Resolve applies a non-terminal resolution (cancelled or call_later). Both
// require a non-blank comment; the order stays in the live queue and must be
// re-claimed to be worked again.
func (u *LifecycleUseCase) Resolve(ctx context.Context, market model.Market, docID, operator string, target model.OrderStatus, comment string) (*model.Order, error) {
	if target != model.OrderStatusCancelled && target != model.OrderStatusCallLater {
		return nil, domainErrors.NewValidationError("status", "unsupported resolution "+string(target))
	}
	if strings.TrimSpace(comment) == "" {
		return nil, domainErrors.NewValidationError("comment", "required for "+string(target))
	}

	order, err := u.held(ctx, market, docID, operator)
	if err != nil {
		return nil, err
	}

	order.Status = target
	order.Comment = comment
	order.AssignedOperator = nil
	order.ResolvedBy = &operator
	order.TotalPrice = order.Total()
	order.UpdatedAt = u.now()
	if err := u.orders.Update(ctx, market, order); err != nil {
		return nil, err
	}

	action := model.AuditActionCancel
	if target == model.OrderStatusCallLater {
		action = model.AuditActionCallLater
	}
	u.audit.Record(ctx, action, operator, market, order.ID)
	return order, nil
}

// Release abandons a held order without resolving it: back to pending, no
// assigned operator, call count bumped by exactly one.
func (u *LifecycleUseCase) Release(ctx context.Context, market model.Market, docID, operator string) (*model.Order, error) {
	order, err := u.held(ctx, market, docID, operator)
	if err != nil {
		return nil, err
	}
	order.Release(u.now())
	if err := u.orders.Update(ctx, market, order); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, model.AuditActionPause, operator, market, order.ID)
	return order, nil
}

// SaveAndClose persists in-place edits and then releases the order. The call
// count increments once, inside the release step.
func (u *LifecycleUseCase) SaveAndClose(ctx context.Context, market model.Market, docID, operator string, edits *OrderEdits) (*model.Order, error) {
	order, err := u.held(ctx, market, docID, operator)
	if err != nil {
		return nil, err
	}
	if err := u.applyEdits(order, edits); err != nil {
		return nil, err
	}
	order.Release(u.now())
	if err := u.orders.Update(ctx, market, order); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, model.AuditActionSave, operator, market, order.ID)
	return order, nil
}

// ResetToPending clears a stuck in_progress, cancelled or call_later row
// back to claimable pending state. Administrative action; the call count is
// left untouched.
func (u *LifecycleUseCase) ResetToPending(ctx context.Context, market model.Market, docID string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, market, docID)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusPending {
		return order, nil
	}
	order.Status = model.OrderStatusPending
	order.AssignedOperator = nil
	order.UpdatedAt = u.now()
	if err := u.orders.Update(ctx, market, order); err != nil {
		return nil, err
	}
	return order, nil
}
