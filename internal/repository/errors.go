package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateCode is returned when creating a promo code whose code
	// already exists.
	ErrDuplicateCode = errors.New("promo code already exists")

	// ErrUsageExhausted is returned when an increment is refused because the
	// usage cap has been reached. The cap is re-checked at increment time,
	// not only at validation time, so two checkouts racing on the last
	// remaining use cannot both redeem.
	ErrUsageExhausted = errors.New("promo code usage limit reached")
)
