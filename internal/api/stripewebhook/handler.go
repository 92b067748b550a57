package stripewebhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"

	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/pkg/metrics"
	"pridenomad-hub/internal/services/claims"
)

const maxBodyBytes = 65536

type Confirmer interface {
	ConfirmPayment(ctx context.Context, userEmail string) (*claims.Confirmation, error)
	ConfirmClaim(ctx context.Context, claimID string) (*claims.Confirmation, error)
}

type Handler struct {
	claims Confirmer
	secret string
	log    *logger.Logger
}

func NewHandler(c Confirmer, endpointSecret string, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{claims: c, secret: endpointSecret, log: log}
}

// StripeWebhook handles POST /webhook/stripe.
func (h *Handler) StripeWebhook(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.WithError(err).Warn("stripe signature verification failed")
		metrics.RecordPaymentFailure("signature")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		status, err := h.handleCheckoutSessionCompleted(c, &session)
		if err != nil {
			// 5xx makes Stripe retry; everything else is acknowledged.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": status})

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
