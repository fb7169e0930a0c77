package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCoupon_CaseInsensitiveMatch(t *testing.T) {
	rules := NewCouponRules()
	cart := cartWithItems(LineItem{ProductID: "1", UnitPrice: 2500, Quantity: 2})

	outcome := cart.ApplyCoupon("welcome10", rules)

	assert.Equal(t, CouponApplied, outcome)
	assert.True(t, cart.DiscountApplied)
}

func TestApplyCoupon_SecondAttemptIsNoOp(t *testing.T) {
	rules := NewCouponRules()
	cart := cartWithItems(LineItem{ProductID: "1", UnitPrice: 2500, Quantity: 2})

	assert.Equal(t, CouponApplied, cart.ApplyCoupon("WELCOME10", rules))
	assert.Equal(t, CouponAlreadyApplied, cart.ApplyCoupon("WELCOME10", rules))
	assert.Equal(t, CouponAlreadyApplied, cart.ApplyCoupon("WELCOME20", rules))
	assert.True(t, cart.DiscountApplied)

	// Discount never stacks: one application, one 10% reduction.
	result := Quote(cart, DefaultPricingConfig())
	assert.Equal(t, int64(500), result.DiscountAmount)
}

func TestApplyCoupon_UnrecognizedCode(t *testing.T) {
	rules := NewCouponRules()
	cart := NewCart("session-1")

	outcome := cart.ApplyCoupon("WELCOME20", rules)

	assert.Equal(t, CouponInvalidCode, outcome)
	assert.False(t, cart.DiscountApplied)
}

func TestApplyCoupon_BlankCode(t *testing.T) {
	rules := NewCouponRules()
	cart := NewCart("session-1")

	assert.Equal(t, CouponEmptyCode, cart.ApplyCoupon("", rules))
	assert.Equal(t, CouponEmptyCode, cart.ApplyCoupon("   ", rules))
	assert.False(t, cart.DiscountApplied)
}

func TestCouponRules_CustomCodes(t *testing.T) {
	rules := NewCouponRules("spring15", "VIP")

	assert.True(t, rules.Recognizes("SPRING15"))
	assert.True(t, rules.Recognizes(" vip "))
	assert.False(t, rules.Recognizes(DefaultCouponCode))
}
