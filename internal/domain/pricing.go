package domain

// PricingConfig holds the storefront pricing rules. All monetary amounts are
// in cents; the discount rate is in basis points (1000 = 10%).
type PricingConfig struct {
	FreeShippingThreshold int64
	FlatShippingCost      int64
	DiscountRate          int64
}

// DefaultPricingConfig returns the storefront defaults: free shipping above
// $60.00, flat $4.99 shipping otherwise, 10% coupon discount.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeShippingThreshold: 60_00,
		FlatShippingCost:      4_99,
		DiscountRate:          1000,
	}
}

// PricingResult is the derived pricing breakdown for a cart. It is never
// persisted; it is recomputed from the cart state on every mutation and is
// identical for identical cart states.
type PricingResult struct {
	Subtotal                 int64 `json:"subtotal"`
	DiscountAmount           int64 `json:"discount_amount"`
	SubtotalAfterDiscount    int64 `json:"subtotal_after_discount"`
	ShippingCost             int64 `json:"shipping_cost"`
	Total                    int64 `json:"total"`
	RemainingForFreeShipping int64 `json:"remaining_for_free_shipping"`
}

// Quote derives the pricing breakdown for the cart.
//
// Shipping is waived only when the discounted subtotal is strictly greater
// than the free-shipping threshold; a cart sitting exactly at the threshold
// still pays flat shipping. An empty cart goes through the same formula, so
// its total equals the flat shipping cost; renderers that want an empty-state
// view short-circuit on the item count instead.
func Quote(cart *Cart, cfg PricingConfig) PricingResult {
	subtotal := cart.Subtotal()

	var discount int64
	if cart.DiscountApplied {
		discount = subtotal * cfg.DiscountRate / 10000
	}

	afterDiscount := subtotal - discount

	shipping := cfg.FlatShippingCost
	if afterDiscount > cfg.FreeShippingThreshold {
		shipping = 0
	}

	remaining := cfg.FreeShippingThreshold - afterDiscount
	if remaining < 0 {
		remaining = 0
	}

	return PricingResult{
		Subtotal:                 subtotal,
		DiscountAmount:           discount,
		SubtotalAfterDiscount:    afterDiscount,
		ShippingCost:             shipping,
		Total:                    afterDiscount + shipping,
		RemainingForFreeShipping: remaining,
	}
}
