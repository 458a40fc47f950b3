package domain

import "time"

// DiscountType represents how a promo code reduces a price.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromoCode represents a redeemable discount code.
type PromoCode struct {
	ID            string
	Code          string // stored uppercase, compared case-insensitively
	DiscountType  DiscountType
	DiscountValue float64
	MaxUsage      *int // nil = unlimited
	CurrentUsage  int  // monotonically increasing, never decremented
	ExpiresAt     *time.Time // nil = never expires
	IsActive      bool
	CreatedAt     time.Time
}

// IsExpired reports whether the code has passed its expiry at the given time.
func (p *PromoCode) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}

// IsExhausted reports whether the code has reached its usage cap.
func (p *PromoCode) IsExhausted() bool {
	return p.MaxUsage != nil && p.CurrentUsage >= *p.MaxUsage
}

// Apply computes the price after applying this discount to cartAmount.
// Fixed discounts floor at zero, never negative.
func (p *PromoCode) Apply(cartAmount float64) float64 {
	switch p.DiscountType {
	case DiscountTypePercentage:
		return cartAmount * (1 - p.DiscountValue/100)
	case DiscountTypeFixed:
		final := cartAmount - p.DiscountValue
		if final < 0 {
			return 0
		}
		return final
	}
	return cartAmount
}
