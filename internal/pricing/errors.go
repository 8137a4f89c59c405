// Package pricing implements the storefront's order-pricing pipeline: cart
// totals, option surcharges, coupon discounts, distance-tiered delivery fees
// and the final payable total. Every function here is pure and synchronous;
// persistence and side effects live with the callers.
package pricing

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrStoreClosed rejects checkout while the store is not accepting orders.
	ErrStoreClosed = errors.New("store is closed")

	// ErrDeliveryFeeUnresolved rejects checkout before a delivery fee was
	// computed and confirmed.
	ErrDeliveryFeeUnresolved = errors.New("delivery fee not resolved")

	// ErrNotServiceable means the distance exceeds every configured zone.
	ErrNotServiceable = errors.New("address outside delivery area")

	// ErrInvalidSelection marks an under- or over-selected option group.
	ErrInvalidSelection = errors.New("invalid option selection")
)

// InvalidSelectionError reports which group failed its selection-count
// constraint. It matches ErrInvalidSelection under errors.Is.
type InvalidSelectionError struct {
	GroupName string
	Min       int
	Max       int
	Selected  int
}

func (e *InvalidSelectionError) Error() string {
	if e.Selected < e.Min {
		return fmt.Sprintf("group %q requires at least %d selection(s), got %d", e.GroupName, e.Min, e.Selected)
	}
	return fmt.Sprintf("group %q allows at most %d selection(s), got %d", e.GroupName, e.Max, e.Selected)
}

func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// Coupon rejection reasons.
type CouponRejectReason string

const (
	CouponNotFound     CouponRejectReason = "not_found"
	CouponExpired      CouponRejectReason = "expired"
	CouponBelowMinimum CouponRejectReason = "below_minimum"
	CouponExhausted    CouponRejectReason = "exhausted"
)

// CouponError is a coupon validation rejection. It carries the threshold or
// date the caller needs for a reason-specific message.
type CouponError struct {
	Reason        CouponRejectReason
	Code          string
	MinOrderValue int64
	ExpiredAt     time.Time
}

func (e *CouponError) Error() string {
	switch e.Reason {
	case CouponNotFound:
		return fmt.Sprintf("coupon %q not found or inactive", e.Code)
	case CouponExpired:
		return fmt.Sprintf("coupon %q expired at %s", e.Code, e.ExpiredAt.Format("2006-01-02"))
	case CouponBelowMinimum:
		return fmt.Sprintf("coupon %q requires a minimum order of %d", e.Code, e.MinOrderValue)
	case CouponExhausted:
		return fmt.Sprintf("coupon %q has no uses left", e.Code)
	}
	return fmt.Sprintf("coupon %q rejected", e.Code)
}
