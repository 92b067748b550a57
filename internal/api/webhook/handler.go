// Package webhook serves the payment provider's redirect-style callback.
package webhook

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/services/claims"
)

type Confirmer interface {
	ConfirmPayment(ctx context.Context, userEmail string) (*claims.Confirmation, error)
}

type Handler struct {
	claims Confirmer
	log    *logger.Logger
}

func NewHandler(c Confirmer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{claims: c, log: log}
}

type Response struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	UserRole users.Role `json:"userRole,omitempty"`
	PlanID   string     `json:"planId,omitempty"`
	IsYearly *bool      `json:"isYearly,omitempty"`
}

// PaymentCallback handles GET /webhook/payment?user_email=...
func (h *Handler) PaymentCallback(c *gin.Context) {
	email := strings.TrimSpace(c.Query("user_email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, Response{Message: "user_email is required"})
		return
	}

	conf, err := h.claims.ConfirmPayment(c.Request.Context(), email)
	if err != nil {
		status, msg := failure(err)
		if status >= http.StatusInternalServerError {
			h.log.WithError(err).Error("payment webhook failed")
		} else {
			h.log.With("reason", apperr.As(err).Code).Warn("payment webhook rejected")
		}
		c.JSON(status, Response{Message: msg})
		return
	}

	yearly := conf.IsYearly
	c.JSON(http.StatusOK, Response{
		Success:  true,
		Message:  "Payment confirmed",
		UserRole: conf.UserRole,
		PlanID:   conf.PlanID,
		IsYearly: &yearly,
	})
}

// failure maps domain errors onto the callback contract: anything the
// caller can act on is a 400, store and provider trouble is a generic 500.
func failure(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrUnknownPlan),
		errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, apperr.As(err).Message
	default:
		return http.StatusInternalServerError, "Failed to process payment"
	}
}
