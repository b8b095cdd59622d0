package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the live-queue lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusCallLater  OrderStatus = "call_later"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusConfirmed,
		OrderStatusCancelled, OrderStatusCallLater:
		return true
	}
	return false
}

// Resolution reports whether the status is a valid target of a resolution
// submitted by the holding operator.
func (s OrderStatus) Resolution() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusCancelled, OrderStatusCallLater:
		return true
	}
	return false
}

// RequiresComment reports whether transitioning to the status needs a
// non-blank operator comment.
func (s OrderStatus) RequiresComment() bool {
	return s == OrderStatusCancelled || s == OrderStatusCallLater
}

// OrderType tags the ingestion channel an order arrived through.
type OrderType string

const (
	OrderTypeSuccess    OrderType = "success"
	OrderTypeInputError OrderType = "input_error"
)

// Address is the structured delivery address of an order.
type Address struct {
	State    string `json:"state"`
	Locality string `json:"locality"`
	Street   string `json:"street"`
	StreetNr string `json:"streetNr"`
	Zipcode  string `json:"zipcode"`
}

// Complete reports whether every address subfield is non-blank.
func (a Address) Complete() bool {
	for _, field := range []string{a.State, a.Locality, a.Street, a.StreetNr, a.Zipcode} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// LineItem is an order-scoped instance of a catalog product. Price is copied
// from the catalog at add-time and edited per-instance afterwards; it does
// not track later catalog changes.
type LineItem struct {
	InstanceID      string          `json:"instanceId"`
	ProductID       string          `json:"productId"`
	Name            string          `json:"name"`
	Personalization string          `json:"personalization"`
	Price           decimal.Decimal `json:"price"`
	Upsell          decimal.Decimal `json:"upsell"`
}

// Order is the unit of work moving through the call-center queue.
type Order struct {
	ID               int64
	DocID            string
	Name             string
	Phone            string
	CustomerAddress  string
	Address          Address
	Products         []LineItem
	Status           OrderStatus
	AssignedOperator *string
	ResolvedBy       *string
	CallCount        int
	Comment          string
	Discount         decimal.Decimal
	DeliveryPrice    decimal.Decimal
	DeliveryDate     *time.Time
	TotalPrice       decimal.Decimal
	OrderTime        time.Time
	Type             OrderType
	UpdatedAt        time.Time
}

// HeldBy reports whether the order is in progress under the given operator.
func (o *Order) HeldBy(operator string) bool {
	return o.Status == OrderStatusInProgress &&
		o.AssignedOperator != nil && *o.AssignedOperator == operator
}

// Total recomputes the derived order total from line items, delivery price
// and discount. Client-supplied totals are never trusted; this runs before
// every persisted status change.
func (o *Order) Total() decimal.Decimal {
	return ComputeTotal(o.Products, o.DeliveryPrice, o.Discount)
}

// ComputeTotal sums (price + upsell) over line items, adds the delivery
// price and subtracts the discount.
func ComputeTotal(items []LineItem, deliveryPrice, discount decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price).Add(item.Upsell)
	}
	return total.Add(deliveryPrice).Sub(discount)
}

// Release returns the order to the queue without terminal resolution:
// pending status, no assigned operator, call count bumped by one.
func (o *Order) Release(now time.Time) {
	o.Status = OrderStatusPending
	o.AssignedOperator = nil
	o.CallCount++
	o.UpdatedAt = now
}
