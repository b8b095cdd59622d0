package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/usecase"
)

// AddressPayload mirrors the structured delivery address.
type AddressPayload struct {
	State    string `json:"state"`
	Locality string `json:"locality"`
	Street   string `json:"street"`
	StreetNr string `json:"streetNr"`
	Zipcode  string `json:"zipcode"`
}

// LineItemPayload is a product instance inside an order payload.
type LineItemPayload struct {
	InstanceID      string          `json:"instanceId"`
	ProductID       string          `json:"productId" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Personalization string          `json:"personalization"`
	Price           decimal.Decimal `json:"price"`
	Upsell          decimal.Decimal `json:"upsell"`
}

// OrderEditsRequest carries the editable order fields an operator submits.
type OrderEditsRequest struct {
	Name            string            `json:"name"`
	Phone           string            `json:"phone"`
	CustomerAddress string            `json:"customerAddress"`
	Address         AddressPayload    `json:"address"`
	Products        []LineItemPayload `json:"products"`
	Comment         string            `json:"comment"`
	Discount        decimal.Decimal   `json:"discount"`
	DeliveryPrice   decimal.Decimal   `json:"deliveryPrice"`
	DeliveryDate    *time.Time        `json:"deliveryDate"`
}

// Edits converts the payload into the usecase edit set.
func (r *OrderEditsRequest) Edits() *usecase.OrderEdits {
	items := make([]model.LineItem, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, model.LineItem{
			InstanceID:      p.InstanceID,
			ProductID:       p.ProductID,
			Name:            p.Name,
			Personalization: p.Personalization,
			Price:           p.Price,
			Upsell:          p.Upsell,
		})
	}
	return &usecase.OrderEdits{
		Name:            r.Name,
		Phone:           r.Phone,
		CustomerAddress: r.CustomerAddress,
		Address: model.Address{
			State:    r.Address.State,
			Locality: r.Address.Locality,
			Street:   r.Address.Street,
			StreetNr: r.Address.StreetNr,
			Zipcode:  r.Address.Zipcode,
		},
		Products:      items,
		Comment:       r.Comment,
		Discount:      r.Discount,
		DeliveryPrice: r.DeliveryPrice,
		DeliveryDate:  r.DeliveryDate,
	}
}

// ResolveRequest carries the operator comment for cancel and call-later.
type ResolveRequest struct {
	Comment string `json:"comment"`
}

// OrderResponse is the transport view of a live order.
type OrderResponse struct {
	OrderID          int64             `json:"orderId"`
	DocID            string            `json:"docId"`
	Name             string            `json:"name"`
	Phone            string            `json:"phone"`
	CustomerAddress  string            `json:"customerAddress"`
	Address          AddressPayload    `json:"address"`
	Products         []LineItemPayload `json:"products"`
	Status           string            `json:"status"`
	AssignedOperator *string           `json:"assignedOperator,omitempty"`
	ResolvedBy       *string           `json:"resolvedBy,omitempty"`
	CallCount        int               `json:"callCount"`
	Comment          string            `json:"comment"`
	Discount         decimal.Decimal   `json:"discount"`
	DeliveryPrice    decimal.Decimal   `json:"deliveryPrice"`
	DeliveryDate     *time.Time        `json:"deliveryDate,omitempty"`
	TotalPrice       decimal.Decimal   `json:"totalPrice"`
	OrderTime        time.Time         `json:"orderTime"`
	Type             string            `json:"type"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// NewOrderResponse maps a domain order to its transport form.
func NewOrderResponse(o *model.Order) OrderResponse {
	items := make([]LineItemPayload, 0, len(o.Products))
	for _, p := range o.Products {
		items = append(items, LineItemPayload{
			InstanceID:      p.InstanceID,
			ProductID:       p.ProductID,
			Name:            p.Name,
			Personalization: p.Personalization,
			Price:           p.Price,
			Upsell:          p.Upsell,
		})
	}
	return OrderResponse{
		OrderID:         o.ID,
		DocID:           o.DocID,
		Name:            o.Name,
		Phone:           o.Phone,
		CustomerAddress: o.CustomerAddress,
		Address: AddressPayload{
			State:    o.Address.State,
			Locality: o.Address.Locality,
			Street:   o.Address.Street,
			StreetNr: o.Address.StreetNr,
			Zipcode:  o.Address.Zipcode,
		},
		Products:         items,
		Status:           string(o.Status),
		AssignedOperator: o.AssignedOperator,
		ResolvedBy:       o.ResolvedBy,
		CallCount:        o.CallCount,
		Comment:          o.Comment,
		Discount:         o.Discount,
		DeliveryPrice:    o.DeliveryPrice,
		DeliveryDate:     o.DeliveryDate,
		TotalPrice:       o.TotalPrice,
		OrderTime:        o.OrderTime,
		Type:             string(o.Type),
		UpdatedAt:        o.UpdatedAt,
	}
}

// NewOrderResponses maps a slice of domain orders.
func NewOrderResponses(orders []model.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, NewOrderResponse(&orders[i]))
	}
	return resp
}
