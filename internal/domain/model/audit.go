package model

import "time"

// AuditAction names an operator action recorded in the audit trail.
type AuditAction string

const (
	AuditActionConfirm   AuditAction = "confirm"
	AuditActionCancel    AuditAction = "cancel"
	AuditActionCallLater AuditAction = "call_later"
	AuditActionCreate    AuditAction = "create_new_order"
	AuditActionNext      AuditAction = "next"
	AuditActionSave      AuditAction = "save"
	AuditActionPause     AuditAction = "pause"
	AuditActionSearch    AuditAction = "search"
)

// AuditEntry is one row of the append-only action log.
type AuditEntry struct {
	ID         int64
	Action     AuditAction
	User       string
	Market     Market
	OrderID    int64
	ActionDate time.Time
}
