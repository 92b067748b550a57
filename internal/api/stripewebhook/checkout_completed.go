package stripewebhooks

import (
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"

	stripepay "pridenomad-hub/internal/infra/stripe"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/services/claims"
)

// handleCheckoutSessionCompleted confirms the claim the session was opened
// for. Sessions that are not settled yet, or that have no matching claim, are
// acknowledged without a retry.
func (h *Handler) handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) (string, error) {
	if !stripepay.IsPaid(session) {
		h.log.With("session_id", session.ID).Info("checkout session not paid yet")
		return "pending", nil
	}

	var (
		conf *claims.Confirmation
		err  error
	)
	if claimID := stripepay.ClaimID(session); claimID != "" {
		conf, err = h.claims.ConfirmClaim(c.Request.Context(), claimID)
	} else {
		email := stripepay.PayerEmail(session)
		if email == "" {
			h.log.With("session_id", session.ID).Warn("checkout session without claim or payer email")
			return "ignored", nil
		}
		conf, err = h.claims.ConfirmPayment(c.Request.Context(), email)
	}

	switch {
	case err == nil:
		h.log.WithFields(map[string]interface{}{
			"session_id": session.ID,
			"plan":       conf.PlanID,
			"role":       conf.UserRole,
		}).Info("stripe payment confirmed")
		return "confirmed", nil
	case apperr.IsNotFound(err):
		h.log.With("session_id", session.ID).Warn("no pending claim for stripe payment")
		return "ignored", nil
	default:
		h.log.WithError(err).Error("stripe payment confirmation failed")
		return "", err
	}
}
