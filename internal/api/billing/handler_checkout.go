package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/plans"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/services/claims"
)

type claimRequest struct {
	SelectedPlan string            `json:"selectedPlan" binding:"required"`
	IsYearly     bool              `json:"isYearly"`
	BusinessID   string            `json:"businessId"`
	BusinessData listings.Business `json:"businessData"`
}

type claimResponse struct {
	RequiresPayment bool                  `json:"requiresPayment"`
	CheckoutURL     string                `json:"checkoutUrl,omitempty"`
	Claim           *billing.PendingClaim `json:"claim,omitempty"`
	Business        *listings.Business    `json:"business,omitempty"`
}

// CreateClaim handles POST /claims. The free plan needs no payment, so its
// listing is created straight away.
func (h *Handler) CreateClaim(c *gin.Context) {
	var body claimRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BindError(c, err)
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("User not identified"))
		return
	}

	if plan, known := plans.Lookup(body.SelectedPlan); known && plan.IsFree() {
		b, err := h.listings.Create(c.Request.Context(), middleware.Actor(c), body.BusinessData)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.Created(c, claimResponse{Business: b})
		return
	}

	res, err := h.claims.CreatePendingClaim(c.Request.Context(), claims.CreateInput{
		UserID:     u.ID,
		Email:      u.Email,
		PlanID:     body.SelectedPlan,
		IsYearly:   body.IsYearly,
		BusinessID: body.BusinessID,
		Business:   body.BusinessData,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Created(c, claimResponse{
		RequiresPayment: true,
		CheckoutURL:     res.CheckoutURL,
		Claim:           res.Claim,
	})
}

// AbandonClaim handles DELETE /claims/:id.
func (h *Handler) AbandonClaim(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.claims.AbandonClaim(c.Request.Context(), c.Param("id"), userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
