package domain

// Settled/paid markers the verification payload may carry. Success is
// classified from the payload, never from the HTTP status alone.
const (
	PaymentStatusSettled = "SETTLED"
	PaymentStatusPaid    = "paid"
)

// VerificationOutcome classifies the result of a payment-callback verification.
type VerificationOutcome string

const (
	// VerificationSuccess means the payload carried an explicit success marker.
	VerificationSuccess VerificationOutcome = "success"

	// VerificationFailed means verification completed and the payment did not settle.
	VerificationFailed VerificationOutcome = "failed"

	// VerificationError means verification itself could not be completed
	// (missing payment identifier, network failure, ambiguous response).
	// Distinct from VerificationFailed: the remediation is to retry
	// verification, not the payment.
	VerificationError VerificationOutcome = "error"
)

// VerificationResult is the terminal classification shown to the user after
// they return from the external payment page.
type VerificationResult struct {
	Outcome   VerificationOutcome `json:"status"`
	PaymentID string              `json:"payment_id,omitempty"`
	Message   string              `json:"message"`
}
