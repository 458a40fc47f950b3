package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkout/internal/domain"
	"checkout/internal/redis"
	"checkout/internal/workflow"
)

// PromoValidatorInterface defines the promo validation contract.
// This interface allows for testing with mock implementations.
type PromoValidatorInterface interface {
	Validate(ctx context.Context, code, userID string, cartAmount float64) (*ValidationResult, error)
}

// PackageCatalogInterface defines the package lookup contract.
type PackageCatalogInterface interface {
	GetPackage(ctx context.Context, id string) (*domain.CreditPackage, error)
}

// Ensure the concrete services implement the interfaces.
var (
	_ PromoValidatorInterface = (*PromoService)(nil)
	_ PackageCatalogInterface = (*PricingService)(nil)
)

// confirmLockTTL bounds how long a crashed confirmation can block a session.
const confirmLockTTL = 30 * time.Second

// paymentTypeCreditsPurchase is the payment type sent to the workflow engine.
const paymentTypeCreditsPurchase = "credits_purchase"

// CheckoutService drives the interactive purchase flow: session creation,
// promo application, and the hand-off to external payment initiation.
type CheckoutService struct {
	sessions  redis.SessionStoreInterface
	locks     redis.LockStoreInterface
	validator PromoValidatorInterface
	catalog   PackageCatalogInterface
	initiator workflow.PaymentInitiator
	currency  string
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	sessions redis.SessionStoreInterface,
	locks redis.LockStoreInterface,
	validator PromoValidatorInterface,
	catalog PackageCatalogInterface,
	initiator workflow.PaymentInitiator,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		sessions:  sessions,
		locks:     locks,
		validator: validator,
		catalog:   catalog,
		initiator: initiator,
		currency:  currency,
	}
}

// StartSessionRequest contains the parameters for starting a checkout.
type StartSessionRequest struct {
	UserID    string
	PackageID string
}

// StartSession creates a new checkout session for a credit package.
func (s *CheckoutService) StartSession(ctx context.Context, req StartSessionRequest) (*domain.CheckoutSession, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.PackageID == "" {
		return nil, ErrInvalidPackageID
	}

	pkg, err := s.catalog.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	session := &domain.CheckoutSession{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		OriginalPrice: pkg.Price,
		Currency:      s.currency,
		State:         domain.CheckoutStateIdle,
		CreatedAt:     time.Now(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// GetSession retrieves a checkout session.
func (s *CheckoutService) GetSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// ApplyPromoResult pairs the updated session with the validation outcome.
type ApplyPromoResult struct {
	Session    *domain.CheckoutSession
	Validation *ValidationResult
}

// ApplyPromo validates a promo code against the session's original price and
// stores the resulting discount. A rejected code always clears any previously
// applied discount; stale discounts are never silently retained.
func (s *CheckoutService) ApplyPromo(ctx context.Context, sessionID, code string) (*ApplyPromoResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkMutable(session); err != nil {
		return nil, err
	}

	if strings.TrimSpace(code) == "" {
		return nil, ErrPromoCodeRequired
	}

	// Drop any previous discount before validating, so a rejection cannot
	// leave the old one applied.
	session.Discount = nil
	session.State = domain.CheckoutStateIdle

	result, err := s.validator.Validate(ctx, code, session.UserID, session.OriginalPrice)
	if err != nil {
		// Persist the cleared discount even when validation itself failed.
		_ = s.sessions.Save(ctx, session)
		return nil, err
	}

	if result.Valid {
		session.Discount = &domain.AppliedDiscount{
			Code:     strings.ToUpper(strings.TrimSpace(code)),
			PromoID:  result.PromoID,
			Amount:   session.OriginalPrice - result.FinalPrice,
			NewTotal: result.FinalPrice,
		}
		session.State = domain.CheckoutStatePromoApplied
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return &ApplyPromoResult{Session: session, Validation: result}, nil
}

// RemovePromo clears the applied discount and returns the session to idle.
// Re-applying the same code goes through full validation again; there is no
// cached "valid" flag to toggle back on.
func (s *CheckoutService) RemovePromo(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkMutable(session); err != nil {
		return nil, err
	}

	session.Discount = nil
	session.State = domain.CheckoutStateIdle

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// ConfirmResult contains the outcome of a confirmed checkout.
type ConfirmResult struct {
	Session     *domain.CheckoutSession
	RedirectURL string
}

// Confirm initiates the external payment for the session's final price and
// hands back the redirect target. The amount sent is exactly
// session.FinalPrice(), the same value the session displays; the two can
// never diverge. A session discounted to zero still goes through payment
// initiation so zero-value orders are recorded.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.State {
	case domain.CheckoutStateRedirected:
		return nil, ErrSessionClosed
	case domain.CheckoutStatePaymentPending:
		return nil, ErrPaymentInProgress
	}

	// Guard against duplicate submissions racing across instances.
	acquired, err := s.locks.AcquireConfirmLock(ctx, session.ID, confirmLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrPaymentInProgress
	}
	defer func() {
		_ = s.locks.ReleaseConfirmLock(ctx, session.ID)
	}()

	session.State = domain.CheckoutStatePaymentPending
	session.FailureReason = ""
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	initReq := workflow.InitiatePaymentRequest{
		UserID:    session.UserID,
		Amount:    session.FinalPrice(),
		Type:      paymentTypeCreditsPurchase,
		PackageID: session.PackageID,
	}
	if session.Discount != nil {
		initReq.PromoCode = session.Discount.Code
	}

	result, err := s.initiator.InitiatePayment(ctx, initReq)
	if err != nil {
		s.failSession(ctx, session, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrPaymentInitiation, err)
	}

	if result.RedirectURL == "" {
		s.failSession(ctx, session, ErrNoRedirectURL.Error())
		return nil, ErrNoRedirectURL
	}

	session.State = domain.CheckoutStateRedirected
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return &ConfirmResult{Session: session, RedirectURL: result.RedirectURL}, nil
}

// CancelSession discards an in-progress checkout. Nothing irreversible has
// happened locally before payment initiation, so no compensation is needed.
func (s *CheckoutService) CancelSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}
	return s.sessions.Delete(ctx, sessionID)
}

// checkMutable rejects promo changes once payment has been initiated.
func (s *CheckoutService) checkMutable(session *domain.CheckoutSession) error {
	switch session.State {
	case domain.CheckoutStatePaymentPending:
		return ErrPaymentInProgress
	case domain.CheckoutStateRedirected:
		return ErrSessionClosed
	}
	return nil
}

func (s *CheckoutService) failSession(ctx context.Context, session *domain.CheckoutSession, reason string) {
	session.State = domain.CheckoutStatePaymentFailed
	session.FailureReason = reason
	_ = s.sessions.Save(ctx, session)
}
