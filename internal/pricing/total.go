package pricing

// ComposeTotal combines subtotal, delivery fee and discount into the final
// payable total, floored at zero. A nil fee means the quote was never
// resolved or confirmed, which blocks checkout; the discount was already
// computed against the subtotal alone.
func ComposeTotal(subtotal int64, deliveryFee *int64, discount int64) (int64, error) {
	if deliveryFee == nil {
		return 0, ErrDeliveryFeeUnresolved
	}

	total := subtotal + *deliveryFee - discount
	if total < 0 {
		total = 0
	}
	return total, nil
}
