package service

import (
	"context"
	"log"

	"checkout/internal/domain"
	"checkout/internal/workflow"
)

// CallbackService classifies the return leg of an off-site payment.
type CallbackService struct {
	verifier workflow.PaymentVerifier
}

// NewCallbackService creates a new CallbackService.
func NewCallbackService(verifier workflow.PaymentVerifier) *CallbackService {
	return &CallbackService{verifier: verifier}
}

// Classify verifies a payment attempt and maps it to exactly one terminal
// outcome. "failed" means the payment did not settle; "error" means
// verification itself could not complete. The two are kept apart because the
// remediation differs: retry verification vs. retry payment.
func (s *CallbackService) Classify(ctx context.Context, paymentID string) *domain.VerificationResult {
	if paymentID == "" {
		// Missing identifier is never treated as a failed payment.
		return &domain.VerificationResult{
			Outcome: domain.VerificationError,
			Message: "payment identifier missing from callback",
		}
	}

	resp, err := s.verifier.VerifyPayment(ctx, paymentID)
	if err != nil {
		log.Printf("payment verification error for %s: %v", paymentID, err)
		return &domain.VerificationResult{
			Outcome:   domain.VerificationError,
			PaymentID: paymentID,
			Message:   "could not verify payment status",
		}
	}

	// Success requires an explicit marker in the payload. Credits are
	// granted by the workflow engine at settlement; this service only
	// observes the outcome.
	if resp.Success || resp.Status == domain.PaymentStatusSettled || resp.Status == domain.PaymentStatusPaid {
		return &domain.VerificationResult{
			Outcome:   domain.VerificationSuccess,
			PaymentID: paymentID,
			Message:   "payment successful, credits have been added to your account",
		}
	}

	message := resp.Message
	if message == "" {
		message = "payment failed, please try again"
	}

	return &domain.VerificationResult{
		Outcome:   domain.VerificationFailed,
		PaymentID: paymentID,
		Message:   message,
	}
}
