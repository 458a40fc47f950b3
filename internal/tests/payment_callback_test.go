package tests

import (
	"context"
	"errors"
	"testing"

	"checkout/internal/domain"
	"checkout/internal/service"
	"checkout/internal/workflow"
)

// ──────────────────────────────────────────────
// PAYMENT CALLBACK CLASSIFICATION
// ──────────────────────────────────────────────

func TestClassify_MissingPaymentID_IsErrorNotFailed(t *testing.T) {
	t.Parallel()

	verifier := &MockPaymentVerifier{}
	callbackService := service.NewCallbackService(verifier)

	result := callbackService.Classify(context.Background(), "")

	if result.Outcome != domain.VerificationError {
		t.Errorf("expected error outcome, got %s", result.Outcome)
	}

	// No identifier means no verification attempt at all.
	if verifier.VerifyCallCount != 0 {
		t.Errorf("expected no verification call, got %d", verifier.VerifyCallCount)
	}
}

func TestClassify_SuccessMarkers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		response workflow.VerificationResponse
	}{
		{
			name:     "explicit success flag",
			response: workflow.VerificationResponse{Success: true},
		},
		{
			name:     "settled status",
			response: workflow.VerificationResponse{Status: "SETTLED"},
		},
		{
			name:     "paid status",
			response: workflow.VerificationResponse{Status: "paid"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			verifier := &MockPaymentVerifier{Response: &tc.response}
			callbackService := service.NewCallbackService(verifier)

			result := callbackService.Classify(context.Background(), "pay-123")

			if result.Outcome != domain.VerificationSuccess {
				t.Errorf("expected success outcome, got %s (%s)", result.Outcome, result.Message)
			}
			if result.PaymentID != "pay-123" {
				t.Errorf("expected payment id pay-123, got %s", result.PaymentID)
			}
		})
	}
}

func TestClassify_NonSettledStatus_IsFailed(t *testing.T) {
	t.Parallel()

	verifier := &MockPaymentVerifier{
		Response: &workflow.VerificationResponse{
			Status:  "DECLINED",
			Message: "card declined by issuer",
		},
	}
	callbackService := service.NewCallbackService(verifier)

	result := callbackService.Classify(context.Background(), "pay-123")

	if result.Outcome != domain.VerificationFailed {
		t.Errorf("expected failed outcome, got %s", result.Outcome)
	}

	// The provider's message reaches the user.
	if result.Message != "card declined by issuer" {
		t.Errorf("expected provider message, got %q", result.Message)
	}
}

func TestClassify_EmptyPayload_IsFailedWithDefaultMessage(t *testing.T) {
	t.Parallel()

	verifier := &MockPaymentVerifier{Response: &workflow.VerificationResponse{}}
	callbackService := service.NewCallbackService(verifier)

	result := callbackService.Classify(context.Background(), "pay-123")

	if result.Outcome != domain.VerificationFailed {
		t.Errorf("expected failed outcome, got %s", result.Outcome)
	}
	if result.Message == "" {
		t.Error("expected a default failure message")
	}
}

func TestClassify_VerificationUnreachable_IsErrorNotFailed(t *testing.T) {
	t.Parallel()

	verifier := &MockPaymentVerifier{Err: errors.New("connection reset")}
	callbackService := service.NewCallbackService(verifier)

	result := callbackService.Classify(context.Background(), "pay-123")

	// A verification outage must not look like a declined payment; the
	// remediation differs (retry verification vs. retry payment).
	if result.Outcome != domain.VerificationError {
		t.Errorf("expected error outcome, got %s", result.Outcome)
	}
}
