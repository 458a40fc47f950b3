package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout/internal/domain"
	"checkout/internal/repository"
	"checkout/internal/service"
)

// ──────────────────────────────────────────────
// 1. PROMO VALIDATION
// ──────────────────────────────────────────────

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func newActivePromo(id, code string, discountType domain.DiscountType, value float64) *domain.PromoCode {
	return &domain.PromoCode{
		ID:            id,
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: value,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
}

func TestValidate_DiscountComputation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		discountType  domain.DiscountType
		discountValue float64
		cartAmount    float64
		wantFinal     float64
	}{
		{
			name:          "fixed discount subtracts from cart",
			discountType:  domain.DiscountTypeFixed,
			discountValue: 20,
			cartAmount:    100,
			wantFinal:     80,
		},
		{
			name:          "percentage discount scales cart",
			discountType:  domain.DiscountTypePercentage,
			discountValue: 25,
			cartAmount:    100,
			wantFinal:     75,
		},
		{
			name:          "fixed discount larger than cart floors at zero",
			discountType:  domain.DiscountTypeFixed,
			discountValue: 80,
			cartAmount:    50,
			wantFinal:     0,
		},
		{
			name:          "full percentage discount reaches zero",
			discountType:  domain.DiscountTypePercentage,
			discountValue: 100,
			cartAmount:    100,
			wantFinal:     0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			promoRepo := NewMockPromoRepository()
			promoRepo.AddPromo(newActivePromo("promo-1", "SAVE", tc.discountType, tc.discountValue))
			promoService := service.NewPromoService(promoRepo)

			result, err := promoService.Validate(context.Background(), "SAVE", "user-1", tc.cartAmount)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if !result.Valid {
				t.Fatalf("expected code to be valid, got message: %s", result.Message)
			}

			if result.FinalPrice != tc.wantFinal {
				t.Errorf("expected final price %v, got %v", tc.wantFinal, result.FinalPrice)
			}

			if result.PromoID != "promo-1" {
				t.Errorf("expected promo id promo-1, got %s", result.PromoID)
			}
		})
	}
}

func TestValidate_CodeIsCaseInsensitiveAndTrimmed(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promoRepo.AddPromo(newActivePromo("promo-1", "SUMMER2026", domain.DiscountTypeFixed, 10))
	promoService := service.NewPromoService(promoRepo)

	for _, code := range []string{"summer2026", "  SUMMER2026  ", "Summer2026"} {
		result, err := promoService.Validate(context.Background(), code, "user-1", 100)
		if err != nil {
			t.Fatalf("code %q: expected no error, got: %v", code, err)
		}
		if !result.Valid {
			t.Errorf("code %q: expected valid, got message %s", code, result.Message)
		}
	}
}

func TestValidate_UnknownCode_Rejected(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promoService := service.NewPromoService(promoRepo)

	result, err := promoService.Validate(context.Background(), "NOPE", "user-1", 100)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Valid {
		t.Error("expected unknown code to be rejected")
	}

	if result.Message != service.MsgInvalidCode {
		t.Errorf("expected message %q, got %q", service.MsgInvalidCode, result.Message)
	}
}

func TestValidate_InactiveCode_RejectedWithGenericMessage(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promo := newActivePromo("promo-1", "HIDDEN", domain.DiscountTypeFixed, 10)
	promo.IsActive = false
	promoRepo.AddPromo(promo)
	promoService := service.NewPromoService(promoRepo)

	result, err := promoService.Validate(context.Background(), "HIDDEN", "user-1", 100)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Valid {
		t.Error("expected inactive code to be rejected")
	}

	// Inactive looks the same as unknown to the user.
	if result.Message != service.MsgInvalidCode {
		t.Errorf("expected message %q, got %q", service.MsgInvalidCode, result.Message)
	}
}

func TestValidate_ExpiredCode_RejectedRegardlessOfUsage(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promo := newActivePromo("promo-1", "OLD", domain.DiscountTypePercentage, 50)
	promo.ExpiresAt = timePtr(time.Now().Add(-time.Hour))
	promo.MaxUsage = intPtr(100) // plenty of uses left
	promoRepo.AddPromo(promo)
	promoService := service.NewPromoService(promoRepo)

	result, err := promoService.Validate(context.Background(), "OLD", "user-1", 100)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Valid {
		t.Error("expected expired code to be rejected")
	}

	if result.Message != service.MsgCodeExpired {
		t.Errorf("expected message %q, got %q", service.MsgCodeExpired, result.Message)
	}
}

func TestValidate_UsageCapReached_Rejected(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promo := newActivePromo("promo-1", "CAPPED", domain.DiscountTypeFixed, 10)
	promo.MaxUsage = intPtr(5)
	promo.CurrentUsage = 5
	promoRepo.AddPromo(promo)
	promoService := service.NewPromoService(promoRepo)

	result, err := promoService.Validate(context.Background(), "CAPPED", "user-1", 100)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Valid {
		t.Error("expected capped code to be rejected")
	}

	if result.Message != service.MsgUsageLimitHit {
		t.Errorf("expected message %q, got %q", service.MsgUsageLimitHit, result.Message)
	}
}

func TestValidate_IsIdempotent(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promo := newActivePromo("promo-1", "REPEAT", domain.DiscountTypeFixed, 20)
	promo.MaxUsage = intPtr(3)
	promo.CurrentUsage = 2
	promoRepo.AddPromo(promo)
	promoService := service.NewPromoService(promoRepo)

	var first *service.ValidationResult
	for i := 0; i < 5; i++ {
		result, err := promoService.Validate(context.Background(), "REPEAT", "user-1", 100)
		if err != nil {
			t.Fatalf("attempt %d: expected no error, got: %v", i, err)
		}
		if first == nil {
			first = result
			continue
		}
		if *result != *first {
			t.Errorf("attempt %d: result %+v differs from first %+v", i, result, first)
		}
	}

	// Validation alone never consumes a use.
	if got := promoRepo.GetPromo("promo-1").CurrentUsage; got != 2 {
		t.Errorf("expected usage to stay at 2, got %d", got)
	}
}

func TestValidate_StorageFailure_NotReportedAsInvalidCode(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promoRepo.GetByCodeError = errors.New("connection refused")
	promoService := service.NewPromoService(promoRepo)

	_, err := promoService.Validate(context.Background(), "ANY", "user-1", 100)
	if err == nil {
		t.Fatal("expected an error when storage is down")
	}

	if !errors.Is(err, service.ErrPromoLookupUnavailable) {
		t.Errorf("expected ErrPromoLookupUnavailable, got: %v", err)
	}
}

func TestValidate_BlankCode_NoLookup(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promoService := service.NewPromoService(promoRepo)

	for _, code := range []string{"", "   ", "\t"} {
		_, err := promoService.Validate(context.Background(), code, "user-1", 100)
		if !errors.Is(err, service.ErrPromoCodeRequired) {
			t.Errorf("code %q: expected ErrPromoCodeRequired, got: %v", code, err)
		}
	}

	if promoRepo.GetByCodeCallCount != 0 {
		t.Errorf("expected no lookups for blank codes, got %d", promoRepo.GetByCodeCallCount)
	}
}

// ──────────────────────────────────────────────
// 2. PROMO CREATION INVARIANTS
// ──────────────────────────────────────────────

func TestCreatePromo_ValueInvariants(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     service.CreatePromoRequest
		wantErr error
	}{
		{
			name: "percentage above 100 rejected",
			req: service.CreatePromoRequest{
				Code:          "TOOMUCH",
				DiscountType:  domain.DiscountTypePercentage,
				DiscountValue: 150,
			},
			wantErr: service.ErrInvalidDiscountValue,
		},
		{
			name: "percentage of exactly 100 accepted",
			req: service.CreatePromoRequest{
				Code:          "FREEBIE",
				DiscountType:  domain.DiscountTypePercentage,
				DiscountValue: 100,
				IsActive:      true,
			},
		},
		{
			name: "zero percentage rejected",
			req: service.CreatePromoRequest{
				Code:          "NOTHING",
				DiscountType:  domain.DiscountTypePercentage,
				DiscountValue: 0,
			},
			wantErr: service.ErrInvalidDiscountValue,
		},
		{
			name: "negative fixed value rejected",
			req: service.CreatePromoRequest{
				Code:          "NEGATIVE",
				DiscountType:  domain.DiscountTypeFixed,
				DiscountValue: -5,
			},
			wantErr: service.ErrInvalidDiscountValue,
		},
		{
			name: "unknown discount type rejected",
			req: service.CreatePromoRequest{
				Code:          "WEIRD",
				DiscountType:  "bogo",
				DiscountValue: 10,
			},
			wantErr: service.ErrInvalidDiscountType,
		},
		{
			name: "zero max usage rejected",
			req: service.CreatePromoRequest{
				Code:          "ZEROCAP",
				DiscountType:  domain.DiscountTypeFixed,
				DiscountValue: 10,
				MaxUsage:      intPtr(0),
			},
			wantErr: service.ErrInvalidMaxUsage,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			promoService := service.NewPromoService(NewMockPromoRepository())

			promo, err := promoService.CreatePromo(context.Background(), tc.req)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got: %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if promo.CurrentUsage != 0 {
				t.Errorf("expected new promo to start at zero usage, got %d", promo.CurrentUsage)
			}
		})
	}
}

func TestCreatePromo_CodeStoredUppercase(t *testing.T) {
	t.Parallel()

	promoService := service.NewPromoService(NewMockPromoRepository())

	promo, err := promoService.CreatePromo(context.Background(), service.CreatePromoRequest{
		Code:          "  summer2026 ",
		DiscountType:  domain.DiscountTypeFixed,
		DiscountValue: 10,
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if promo.Code != "SUMMER2026" {
		t.Errorf("expected code SUMMER2026, got %s", promo.Code)
	}
}

// ──────────────────────────────────────────────
// 3. REDEMPTION CAP RE-CHECK
// ──────────────────────────────────────────────

func TestRedeem_CapRecheckedAtIncrementTime(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promo := newActivePromo("promo-1", "LASTONE", domain.DiscountTypeFixed, 10)
	promo.MaxUsage = intPtr(1)
	promoRepo.AddPromo(promo)
	promoService := service.NewPromoService(promoRepo)

	// Both checkouts validated while one use was left.
	for _, userID := range []string{"user-a", "user-b"} {
		result, err := promoService.Validate(context.Background(), "LASTONE", userID, 100)
		if err != nil || !result.Valid {
			t.Fatalf("user %s: expected valid pre-redemption, got result=%+v err=%v", userID, result, err)
		}
	}

	// Only one redemption can win the last use.
	if _, err := promoService.Redeem(context.Background(), "promo-1"); err != nil {
		t.Fatalf("first redemption: expected success, got: %v", err)
	}

	_, err := promoService.Redeem(context.Background(), "promo-1")
	if !errors.Is(err, repository.ErrUsageExhausted) {
		t.Errorf("second redemption: expected ErrUsageExhausted, got: %v", err)
	}

	if got := promoRepo.GetPromo("promo-1").CurrentUsage; got != 1 {
		t.Errorf("expected usage 1 after racing redemptions, got %d", got)
	}
}

func TestRedeem_CounterIsMonotonic(t *testing.T) {
	t.Parallel()

	promoRepo := NewMockPromoRepository()
	promoRepo.AddPromo(newActivePromo("promo-1", "UNCAPPED", domain.DiscountTypeFixed, 10))
	promoService := service.NewPromoService(promoRepo)

	for i := 1; i <= 3; i++ {
		promo, err := promoService.Redeem(context.Background(), "promo-1")
		if err != nil {
			t.Fatalf("redemption %d: expected no error, got: %v", i, err)
		}
		if promo.CurrentUsage != i {
			t.Errorf("redemption %d: expected usage %d, got %d", i, i, promo.CurrentUsage)
		}
	}
}
