package domain

import "time"

// CheckoutState represents the current state of a checkout session.
type CheckoutState string

const (
	CheckoutStateIdle           CheckoutState = "IDLE"
	CheckoutStatePromoApplied   CheckoutState = "PROMO_APPLIED"
	CheckoutStatePaymentPending CheckoutState = "PAYMENT_PENDING"
	CheckoutStateRedirected     CheckoutState = "REDIRECTED"
	CheckoutStatePaymentFailed  CheckoutState = "PAYMENT_FAILED"
)

// AppliedDiscount holds the validated result of a promo code application.
// NewTotal is the value computed at validation time and is never re-derived.
type AppliedDiscount struct {
	Code    string  `json:"code"`
	PromoID string  `json:"promo_id"`
	Amount  float64 `json:"amount"`
	NewTotal float64 `json:"new_total"`
}

// CheckoutSession is the transient state of one in-progress purchase attempt.
type CheckoutSession struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	PackageID     string           `json:"package_id"`
	PackageName   string           `json:"package_name"`
	OriginalPrice float64          `json:"original_price"`
	Currency      string           `json:"currency"`
	State         CheckoutState    `json:"state"`
	Discount      *AppliedDiscount `json:"discount,omitempty"`
	FailureReason string           `json:"failure_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// FinalPrice returns the amount actually due. This exact value is the one
// sent to payment initiation; display and charge must never diverge.
func (s *CheckoutSession) FinalPrice() float64 {
	if s.Discount != nil {
		return s.Discount.NewTotal
	}
	return s.OriginalPrice
}
