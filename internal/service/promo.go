package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkout/internal/domain"
	"checkout/internal/repository"
)

// User-facing rejection messages. The three rejection causes stay
// distinguishable so the UI can tell the user what actually went wrong.
const (
	MsgInvalidCode   = "invalid or inactive promo code"
	MsgCodeExpired   = "promo code has expired"
	MsgUsageLimitHit = "promo code usage limit reached"
	MsgCodeApplied   = "promo code applied"
)

// ValidationResult is the outcome of validating a promo code against a cart.
type ValidationResult struct {
	Valid      bool
	FinalPrice float64
	PromoID    string
	Message    string
}

// PromoService validates promo codes and manages their lifecycle.
type PromoService struct {
	promoRepo repository.PromoRepository
}

// NewPromoService creates a new PromoService.
func NewPromoService(promoRepo repository.PromoRepository) *PromoService {
	return &PromoService{promoRepo: promoRepo}
}

// Validate checks whether a promo code is currently redeemable against the
// given cart amount. Validation is read-only: the usage counter is never
// touched here, so calling it repeatedly with the same inputs yields the
// same result. The counter only moves at confirmed redemption (Redeem),
// where the cap is re-checked atomically.
func (s *PromoService) Validate(ctx context.Context, code, userID string, cartAmount float64) (*ValidationResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrPromoCodeRequired
	}
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if cartAmount < 0 {
		return nil, ErrInvalidCartAmount
	}

	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if err == repository.ErrNotFound {
			return &ValidationResult{Valid: false, Message: MsgInvalidCode}, nil
		}
		// Storage failure is not "invalid code"; surface it distinctly.
		return nil, fmt.Errorf("%w: %v", ErrPromoLookupUnavailable, err)
	}

	if !promo.IsActive {
		return &ValidationResult{Valid: false, Message: MsgInvalidCode}, nil
	}

	if promo.IsExpired(time.Now()) {
		return &ValidationResult{Valid: false, Message: MsgCodeExpired}, nil
	}

	if promo.IsExhausted() {
		return &ValidationResult{Valid: false, Message: MsgUsageLimitHit}, nil
	}

	return &ValidationResult{
		Valid:      true,
		FinalPrice: promo.Apply(cartAmount),
		PromoID:    promo.ID,
		Message:    MsgCodeApplied,
	}, nil
}

// CreatePromoRequest contains the parameters for creating a promo code.
type CreatePromoRequest struct {
	Code          string
	DiscountType  domain.DiscountType
	DiscountValue float64
	MaxUsage      *int
	ExpiresAt     *time.Time
	IsActive      bool
}

// CreatePromo creates a new promo code after checking the value invariants.
func (s *PromoService) CreatePromo(ctx context.Context, req CreatePromoRequest) (*domain.PromoCode, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrPromoCodeRequired
	}

	switch req.DiscountType {
	case domain.DiscountTypePercentage:
		if req.DiscountValue <= 0 || req.DiscountValue > 100 {
			return nil, ErrInvalidDiscountValue
		}
	case domain.DiscountTypeFixed:
		if req.DiscountValue <= 0 {
			return nil, ErrInvalidDiscountValue
		}
	default:
		return nil, ErrInvalidDiscountType
	}

	if req.MaxUsage != nil && *req.MaxUsage <= 0 {
		return nil, ErrInvalidMaxUsage
	}

	promo := &domain.PromoCode{
		ID:            uuid.New().String(),
		Code:          strings.ToUpper(code),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxUsage:      req.MaxUsage,
		CurrentUsage:  0,
		ExpiresAt:     req.ExpiresAt,
		IsActive:      req.IsActive,
		CreatedAt:     time.Now(),
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}

	return promo, nil
}

// ListPromos returns all promo codes, newest first.
func (s *PromoService) ListPromos(ctx context.Context) ([]*domain.PromoCode, error) {
	return s.promoRepo.GetAll(ctx)
}

// SetPromoActive activates or deactivates a promo code.
func (s *PromoService) SetPromoActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return repository.ErrNotFound
	}
	return s.promoRepo.SetActive(ctx, id, active)
}

// Redeem consumes one use of a promo code. Called by the settlement
// authority once payment success is confirmed, never by the checkout flow.
// The repository re-checks the cap inside the same statement, so the last
// remaining use cannot be redeemed twice.
func (s *PromoService) Redeem(ctx context.Context, id string) (*domain.PromoCode, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}

	if err := s.promoRepo.IncrementUsage(ctx, id); err != nil {
		return nil, err
	}

	return s.promoRepo.GetByID(ctx, id)
}

// DeletePromo removes a promo code.
func (s *PromoService) DeletePromo(ctx context.Context, id string) error {
	if id == "" {
		return repository.ErrNotFound
	}
	return s.promoRepo.Delete(ctx, id)
}
