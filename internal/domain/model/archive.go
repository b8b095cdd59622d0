package model

// AWBStatus is the carrier-reported state of a shipped parcel.
type AWBStatus string

const (
	AWBStatusDelivered  AWBStatus = "delivered"
	AWBStatusReturned   AWBStatus = "returned"
	AWBStatusInProgress AWBStatus = "in_progress"
	AWBStatusUnknown    AWBStatus = ""
)

// Valid reports whether the status is a known carrier state.
func (s AWBStatus) Valid() bool {
	switch s {
	case AWBStatusDelivered, AWBStatusReturned, AWBStatusInProgress, AWBStatusUnknown:
		return true
	}
	return false
}

// SentOrder is the frozen archive copy written when an order is confirmed,
// keyed by the numeric order id. UpdatedAt is the confirmation time, not the
// original creation time. Archive records are immutable except for AWB
// assignment and carrier status updates.
type SentOrder struct {
	Order
	AWB       string
	AWBStatus AWBStatus
}
