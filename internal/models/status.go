package models

// Order statuses, in progression order.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var statusOrder = []string{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
}

// ActiveStatuses lists the statuses an order can be filtered by on the
// admin board.
func ActiveStatuses() []string {
	return append([]string(nil), statusOrder...)
}

// KitchenStatuses are the only statuses the kitchen display sees.
func KitchenStatuses() []string {
	return []string{StatusPending, StatusPreparing}
}

// NextStatus returns the next status in the fixed sequence, or "" when the
// order is already delivered, cancelled or unknown. No backward transitions
// exist.
func NextStatus(current string) string {
	for i, s := range statusOrder {
		if s == current {
			if i == len(statusOrder)-1 {
				return ""
			}
			return statusOrder[i+1]
		}
	}
	return ""
}

// CanCancel reports whether an order may still be cancelled. Staff may only
// cancel orders that have not been confirmed yet.
func CanCancel(current string) bool {
	return current == StatusPending
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	for _, known := range statusOrder {
		if s == known {
			return true
		}
	}
	return false
}
