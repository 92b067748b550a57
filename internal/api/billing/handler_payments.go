package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/billing"
	apperr "pridenomad-hub/internal/pkg/errors"
)

// GetPaymentHistory handles GET /me/payments.
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		respond.Error(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	payments, err := h.payments.Payments(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if payments == nil {
		payments = []billing.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}
