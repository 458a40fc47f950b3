package service

import "errors"

var (
	// ErrPromoCodeRequired is returned when the promo code is empty or whitespace.
	ErrPromoCodeRequired = errors.New("promo code is required")

	// ErrInvalidUserID is returned when the user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidCartAmount is returned when the cart amount is negative.
	ErrInvalidCartAmount = errors.New("invalid cart amount")

	// ErrInvalidDiscountType is returned when the discount type is not
	// percentage or fixed.
	ErrInvalidDiscountType = errors.New("invalid discount type")

	// ErrInvalidDiscountValue is returned when the discount value is out of
	// range for its type.
	ErrInvalidDiscountValue = errors.New("invalid discount value")

	// ErrInvalidMaxUsage is returned when the usage cap is zero or negative.
	ErrInvalidMaxUsage = errors.New("invalid max usage")

	// ErrPromoLookupUnavailable is returned when promo validation could not
	// reach storage. Distinct from a rejected code so the user is never told
	// their code is wrong when the service is down.
	ErrPromoLookupUnavailable = errors.New("promo validation temporarily unavailable")

	// ErrInvalidPackageID is returned when the package is empty or unknown.
	ErrInvalidPackageID = errors.New("invalid package id")

	// ErrInvalidSessionID is returned when the session ID is empty.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrSessionNotFound is returned when the checkout session does not exist
	// or has expired.
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrPaymentInProgress is returned when a confirmation is already in
	// flight for the session.
	ErrPaymentInProgress = errors.New("payment already in progress")

	// ErrSessionClosed is returned when the session has already been handed
	// off to the payment provider.
	ErrSessionClosed = errors.New("checkout session already completed")

	// ErrNoRedirectURL is returned when payment initiation succeeded but the
	// response carried no redirect target. An integration failure, not a
	// user error.
	ErrNoRedirectURL = errors.New("no redirect url received from payment provider")

	// ErrPaymentInitiation is returned when the payment-initiation call failed.
	ErrPaymentInitiation = errors.New("payment initiation failed")
)
