package dto

import (
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// SentOrderResponse is the transport view of an archived order.
type SentOrderResponse struct {
	OrderResponse
	AWB       string `json:"awb,omitempty"`
	AWBStatus string `json:"awbStatus,omitempty"`
}

// NewSentOrderResponse maps an archive record to its transport form.
func NewSentOrderResponse(s *model.SentOrder) SentOrderResponse {
	return SentOrderResponse{
		OrderResponse: NewOrderResponse(&s.Order),
		AWB:           s.AWB,
		AWBStatus:     string(s.AWBStatus),
	}
}

// NewSentOrderResponses maps a slice of archive records.
func NewSentOrderResponses(records []model.SentOrder) []SentOrderResponse {
	resp := make([]SentOrderResponse, 0, len(records))
	for i := range records {
		resp = append(resp, NewSentOrderResponse(&records[i]))
	}
	return resp
}

// AssignAWBRequest attaches a carrier tracking code to an archived order.
type AssignAWBRequest struct {
	AWB string `json:"awb" binding:"required"`
}

// AuditEntryResponse is the transport view of a logged action.
type AuditEntryResponse struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	User       string    `json:"user"`
	Market     string    `json:"market"`
	OrderID    int64     `json:"orderId,omitempty"`
	ActionDate time.Time `json:"actionDate"`
}

// NewAuditEntryResponses maps audit entries to their transport form.
func NewAuditEntryResponses(entries []model.AuditEntry) []AuditEntryResponse {
	resp := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, AuditEntryResponse{
			ID:         e.ID,
			Action:     string(e.Action),
			User:       e.User,
			Market:     string(e.Market),
			OrderID:    e.OrderID,
			ActionDate: e.ActionDate,
		})
	}
	return resp
}
