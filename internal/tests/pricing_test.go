package tests

import (
	"context"
	"errors"
	"testing"

	"checkout/internal/domain"
	"checkout/internal/service"
)

// ──────────────────────────────────────────────
// PRICE COMPUTATION
// ──────────────────────────────────────────────

func TestComputeFinal_NoDiscount_ReturnsOriginal(t *testing.T) {
	t.Parallel()

	if got := service.ComputeFinal(99, nil); got != 99 {
		t.Errorf("expected 99, got %v", got)
	}
}

func TestComputeFinal_WithDiscount_ReturnsValidatedTotalVerbatim(t *testing.T) {
	t.Parallel()

	// The calculator must not re-derive the discount math; it takes the
	// validated total as-is.
	discount := &domain.AppliedDiscount{Code: "SAVE", Amount: 33.33, NewTotal: 66.67}

	if got := service.ComputeFinal(100, discount); got != 66.67 {
		t.Errorf("expected 66.67, got %v", got)
	}
}

// ──────────────────────────────────────────────
// CONFIG-DRIVEN PACKAGE CATALOG
// ──────────────────────────────────────────────

func TestGetPackages_ConfigValuesOverrideDefaults(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigRepository()
	configRepo.SetValue("price_pro", "149.5")
	configRepo.SetValue("credits_pro", "200")
	pricingService := service.NewPricingService(configRepo, NewMockConfigCache())

	packages := pricingService.GetPackages(context.Background())

	var pro *domain.CreditPackage
	for i := range packages {
		if packages[i].ID == "pro" {
			pro = &packages[i]
		}
	}
	if pro == nil {
		t.Fatal("expected pro package in catalog")
	}

	if pro.Price != 149.5 {
		t.Errorf("expected configured price 149.5, got %v", pro.Price)
	}
	if pro.Credits != 200 {
		t.Errorf("expected configured credits 200, got %d", pro.Credits)
	}
}

func TestGetPackages_StoreUnavailable_FallsBackToDefaults(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigRepository()
	configRepo.GetValuesError = errors.New("connection refused")
	pricingService := service.NewPricingService(configRepo, NewMockConfigCache())

	packages := pricingService.GetPackages(context.Background())

	if len(packages) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(packages))
	}
	for _, pkg := range packages {
		if pkg.Price <= 0 {
			t.Errorf("package %s: expected positive fallback price, got %v", pkg.ID, pkg.Price)
		}
		if pkg.Credits <= 0 {
			t.Errorf("package %s: expected positive fallback credits, got %d", pkg.ID, pkg.Credits)
		}
	}
}

func TestGetPackages_MalformedConfigValue_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigRepository()
	configRepo.SetValue("price_basic", "not-a-number")
	pricingService := service.NewPricingService(configRepo, NewMockConfigCache())

	pkg, err := pricingService.GetPackage(context.Background(), "basic")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if pkg.Price <= 0 {
		t.Errorf("expected fallback price, got %v", pkg.Price)
	}
}

func TestGetPackages_SecondLookupServedFromCache(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigRepository()
	configRepo.SetValue("price_premium", "250")
	configRepo.SetValue("credits_premium", "400")
	pricingService := service.NewPricingService(configRepo, NewMockConfigCache())

	if _, err := pricingService.GetPackage(context.Background(), "premium"); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	callsAfterFirst := configRepo.GetValuesCallCount

	pkg, err := pricingService.GetPackage(context.Background(), "premium")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	if pkg.Price != 250 {
		t.Errorf("expected cached price 250, got %v", pkg.Price)
	}
	if configRepo.GetValuesCallCount != callsAfterFirst {
		t.Errorf("expected second lookup to hit the cache, repo calls went %d -> %d", callsAfterFirst, configRepo.GetValuesCallCount)
	}
}

func TestServiceCreditCost_UsesConfigWithFallback(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigRepository()
	configRepo.SetValue("credits_cv_optimizer", "15")
	pricingService := service.NewPricingService(configRepo, NewMockConfigCache())

	if got := pricingService.ServiceCreditCost(context.Background(), "cv_optimizer"); got != 15 {
		t.Errorf("expected configured cost 15, got %d", got)
	}

	if got := pricingService.ServiceCreditCost(context.Background(), "unknown_service"); got <= 0 {
		t.Errorf("expected positive fallback cost, got %d", got)
	}
}
