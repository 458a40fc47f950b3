package service

import (
	"context"
	"log"
	"strconv"

	"checkout/internal/domain"
	"checkout/internal/redis"
	"checkout/internal/repository"
)

// Recognized system_config keys for tier pricing and credit grants.
const (
	ConfigKeyPriceBasic     = "price_basic"
	ConfigKeyPricePro       = "price_pro"
	ConfigKeyPricePremium   = "price_premium"
	ConfigKeyCreditsBasic   = "credits_basic"
	ConfigKeyCreditsPro     = "credits_pro"
	ConfigKeyCreditsPremium = "credits_premium"
)

// Fallback constants used when a config key is missing or the store is
// unavailable. A missing key must never fail price computation.
const (
	defaultPriceBasic     = 49
	defaultPricePro       = 99
	defaultPricePremium   = 199
	defaultCreditsBasic   = 50
	defaultCreditsPro     = 120
	defaultCreditsPremium = 300
	defaultServiceCredits = 10
)

// packageDef is the compiled-in definition of a credit package.
type packageDef struct {
	id             string
	name           string
	priceKey       string
	creditsKey     string
	defaultPrice   float64
	defaultCredits int
}

var packageDefs = []packageDef{
	{"basic", "Basic", ConfigKeyPriceBasic, ConfigKeyCreditsBasic, defaultPriceBasic, defaultCreditsBasic},
	{"pro", "Pro", ConfigKeyPricePro, ConfigKeyCreditsPro, defaultPricePro, defaultCreditsPro},
	{"premium", "Premium", ConfigKeyPricePremium, ConfigKeyCreditsPremium, defaultPricePremium, defaultCreditsPremium},
}

// PricingService resolves package prices from the config store and combines
// prices with validated discounts.
type PricingService struct {
	configRepo  repository.ConfigRepository
	configCache redis.ConfigCacheInterface
}

// NewPricingService creates a new PricingService. The cache is optional.
func NewPricingService(configRepo repository.ConfigRepository, configCache redis.ConfigCacheInterface) *PricingService {
	return &PricingService{
		configRepo:  configRepo,
		configCache: configCache,
	}
}

// ComputeFinal combines a base price with an optional validated discount.
// The discount's NewTotal was computed once at validation time and is taken
// verbatim; re-deriving the percentage/fixed math here could diverge from
// what the user was shown.
func ComputeFinal(originalPrice float64, discount *domain.AppliedDiscount) float64 {
	if discount == nil {
		return originalPrice
	}
	return discount.NewTotal
}

// GetPackages returns the credit package catalog with config-driven prices.
func (s *PricingService) GetPackages(ctx context.Context) []domain.CreditPackage {
	keys := make([]string, 0, len(packageDefs)*2)
	for _, def := range packageDefs {
		keys = append(keys, def.priceKey, def.creditsKey)
	}
	values := s.lookup(ctx, keys)

	packages := make([]domain.CreditPackage, 0, len(packageDefs))
	for _, def := range packageDefs {
		packages = append(packages, domain.CreditPackage{
			ID:      def.id,
			Name:    def.name,
			Price:   parseFloat(values[def.priceKey], def.defaultPrice),
			Credits: parseInt(values[def.creditsKey], def.defaultCredits),
		})
	}

	return packages
}

// GetPackage returns a single credit package by ID.
func (s *PricingService) GetPackage(ctx context.Context, id string) (*domain.CreditPackage, error) {
	for _, def := range packageDefs {
		if def.id == id {
			values := s.lookup(ctx, []string{def.priceKey, def.creditsKey})
			return &domain.CreditPackage{
				ID:      def.id,
				Name:    def.name,
				Price:   parseFloat(values[def.priceKey], def.defaultPrice),
				Credits: parseInt(values[def.creditsKey], def.defaultCredits),
			}, nil
		}
	}
	return nil, ErrInvalidPackageID
}

// ServiceCreditCost returns the credit cost of an AI service (key
// "credits_<service>"), falling back to a flat default.
func (s *PricingService) ServiceCreditCost(ctx context.Context, serviceName string) int {
	key := "credits_" + serviceName
	values := s.lookup(ctx, []string{key})
	return parseInt(values[key], defaultServiceCredits)
}

// lookup resolves config keys through the cache, then the repository.
// Failures are logged and swallowed; callers fall back to defaults.
func (s *PricingService) lookup(ctx context.Context, keys []string) map[string]string {
	values := make(map[string]string, len(keys))
	missing := keys

	if s.configCache != nil {
		cached, miss, err := s.configCache.GetMany(ctx, keys)
		if err != nil {
			log.Printf("config cache read failed: %v", err)
		} else {
			values = cached
			missing = miss
		}
	}

	if len(missing) == 0 {
		return values
	}

	fetched, err := s.configRepo.GetValues(ctx, missing)
	if err != nil {
		log.Printf("config lookup failed, using defaults: %v", err)
		return values
	}

	for key, value := range fetched {
		values[key] = value
	}

	if s.configCache != nil && len(fetched) > 0 {
		if err := s.configCache.SetMany(ctx, fetched); err != nil {
			log.Printf("config cache write failed: %v", err)
		}
	}

	return values
}

func parseFloat(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
