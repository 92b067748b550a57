package stripe

import (
	"strings"

	"github.com/stripe/stripe-go/v75"
)

// IsPaid reports whether a completed checkout session actually settled.
// Delayed methods (bank debits) complete with payment_status=unpaid first.
func IsPaid(s *stripe.CheckoutSession) bool {
	if s == nil {
		return false
	}
	switch stripe.CheckoutSessionPaymentStatus(strings.TrimSpace(string(s.PaymentStatus))) {
	case stripe.CheckoutSessionPaymentStatusPaid, stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return true
	default:
		return false
	}
}

// PayerEmail picks the email Stripe collected, falling back to the one we
// prefilled and finally the metadata copy.
func PayerEmail(s *stripe.CheckoutSession) string {
	if s == nil {
		return ""
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		return s.CustomerDetails.Email
	}
	if s.CustomerEmail != "" {
		return s.CustomerEmail
	}
	return s.Metadata["user_email"]
}

// ClaimID is the pending claim the session was created for.
func ClaimID(s *stripe.CheckoutSession) string {
	if s == nil {
		return ""
	}
	if s.ClientReferenceID != "" {
		return s.ClientReferenceID
	}
	return s.Metadata["claim_id"]
}
