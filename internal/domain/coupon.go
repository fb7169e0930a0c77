package domain

import "strings"

// CouponOutcome is the reported result of a coupon apply attempt.
type CouponOutcome string

const (
	CouponApplied        CouponOutcome = "applied"
	CouponAlreadyApplied CouponOutcome = "already_applied"
	CouponEmptyCode      CouponOutcome = "empty_code"
	CouponInvalidCode    CouponOutcome = "invalid_code"
)

// DefaultCouponCode is the single coupon code the storefront ships with.
const DefaultCouponCode = "WELCOME10"

// CouponRules is the static table of recognized coupon codes. Matching is
// case-insensitive and ignores surrounding whitespace.
type CouponRules struct {
	codes map[string]struct{}
}

// NewCouponRules builds a rule table from the given codes. With no codes the
// table recognizes only DefaultCouponCode.
func NewCouponRules(codes ...string) *CouponRules {
	if len(codes) == 0 {
		codes = []string{DefaultCouponCode}
	}
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[normalizeCouponCode(code)] = struct{}{}
	}
	return &CouponRules{codes: set}
}

// Recognizes reports whether the code matches a known coupon.
func (r *CouponRules) Recognizes(code string) bool {
	_, ok := r.codes[normalizeCouponCode(code)]
	return ok
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ApplyCoupon runs a coupon apply attempt against the cart.
//
// At most one coupon is active per cart and it cannot be removed within a
// session; once the discount is applied every further attempt, with any code,
// is a no-op reported as CouponAlreadyApplied so the discount never stacks.
// A blank code and an unrecognized code are distinct outcomes, both leaving
// the cart without a discount.
func (c *Cart) ApplyCoupon(code string, rules *CouponRules) CouponOutcome {
	if strings.TrimSpace(code) == "" {
		return CouponEmptyCode
	}
	if c.DiscountApplied {
		return CouponAlreadyApplied
	}
	if !rules.Recognizes(code) {
		return CouponInvalidCode
	}
	c.DiscountApplied = true
	c.touch()
	return CouponApplied
}
