package repository

import (
	"context"

	"checkout/internal/domain"
)

// PromoRepository defines the persistence operations for promo codes.
type PromoRepository interface {
	// Create persists a new promo code.
	Create(ctx context.Context, promo *domain.PromoCode) error

	// GetByCode retrieves a promo code by its code, case-insensitively.
	// Inactive codes are returned too; callers decide how to treat them.
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)

	// GetByID retrieves a promo code by ID.
	GetByID(ctx context.Context, id string) (*domain.PromoCode, error)

	// GetAll retrieves all promo codes, newest first.
	GetAll(ctx context.Context) ([]*domain.PromoCode, error)

	// SetActive flips the active flag of a promo code.
	SetActive(ctx context.Context, id string, active bool) error

	// IncrementUsage atomically increments the usage counter, but only while
	// the counter is below the cap (or the cap is unset). Returns
	// ErrUsageExhausted when the guard refuses the increment. This is the
	// single authority over the counter; it is never called during validation.
	IncrementUsage(ctx context.Context, id string) error

	// Delete removes a promo code.
	Delete(ctx context.Context, id string) error
}
